package classify

// Phrase tables driving the rule engine. Order matters: reject rules are
// evaluated top to bottom and the first hit wins.

var farmingPhrases = []string{
	"rt to enter", "rt to win", "rt and follow", "rt & follow",
	"retweet to enter", "retweet to win", "retweet and follow",
	"like and rt", "like and retweet", "like & rt",
	"tag 3 friends", "tag your friends", "tag someone",
	"follow and rt", "follow and retweet", "must follow",
	"drop your wallet", "comment your wallet",
}

var jobSeekerPhrases = []string{
	"i'm looking for", "i am looking for", "i need a job",
	"hire me", "consider me", "i'm jobless", "i am jobless",
	"anyone hiring", "does anyone", "help me find",
	"i'm open to", "available for hire", "seeking employment",
}

var justTalkingPhrases = []string{
	"i wanted to", "i want to be", "wanted to be", "i wish",
	"thinking about", "dreaming of", "aspiring",
	"recap:", "my year", "my 2025", "looking back",
	"thank you", "thanks to", "shoutout to",
	"congratulations", "congrats", "proud of",
	"just got", "just became", "new role as",
	"happy to announce", "i'm excited", "i'm proud",
}

var scamPhrases = []string{
	"100x", "moon", "lambo", "get rich", "easy money",
	"financial freedom", "passive income", "guaranteed",
}

var technicalRolePhrases = []string{
	"solidity developer", "rust developer", "smart contract developer",
	"blockchain engineer", "frontend developer", "backend developer",
	"full stack developer", "software engineer",
}

var announcementPhrases = []string{
	"officially", "new brand ambassador",
	"proud to announce", "excited to announce",
}

var explicitHiringPhrases = []string{
	"we're hiring", "we are hiring", "we're looking for",
	"we are looking for", "join our team", "join us",
	"now hiring", "hiring a", "hiring an", "hiring for",
	"seeking a", "seeking an", "looking to hire",
	"position open", "role available", "apply now",
	"apply here", "applications open", "recruiting",
	"come work with", "work with us",
}

var companyVoicePhrases = []string{
	"our team", "our company", "we need", "our project",
	"our platform", "our community",
}

var paymentPhrases = []string{
	"$", "usd", "usdt", "salary", "paid", "compensation",
	"pay", "reward", "token", "monthly", "weekly",
}

var applicationFormMarkers = []string{
	"forms.gle", "typeform", "airtable", "notion.so",
	"google.com/forms", "apply here", "application form",
	"fill out", "submit application",
}

var clearRolePhrases = []string{
	"hiring ambassador", "hiring kol", "hiring community manager",
	"hiring moderator", "hiring content creator",
	"seeking ambassador", "seeking kol", "seeking community manager",
}

var dmPhrases = []string{
	"dm me", "dm us", "message me", "message us",
}

// maxEmojiCount is the density above which a post is treated as spam.
const maxEmojiCount = 15

// rejectRule is one phase-1 instant rejection. First match wins.
type rejectRule struct {
	reason string
	match  func(c candidate) bool
}

// rejectRules in evaluation order.
var rejectRules = []rejectRule{
	{"REJECTED: engagement farming", func(c candidate) bool {
		return containsAny(c.text, farmingPhrases)
	}},
	{"REJECTED: job seeker post", func(c candidate) bool {
		return containsAny(c.text, jobSeekerPhrases)
	}},
	{"REJECTED: talking about it, not hiring", func(c candidate) bool {
		return containsAny(c.text, justTalkingPhrases)
	}},
	{"REJECTED: scam indicators", func(c candidate) bool {
		return containsAny(c.text, scamPhrases)
	}},
	{"REJECTED: technical role", func(c candidate) bool {
		return containsAny(c.text, technicalRolePhrases)
	}},
	{"REJECTED: excessive emojis", func(c candidate) bool {
		return c.emojiCount > maxEmojiCount
	}},
	{"REJECTED: personal announcement, not hiring", func(c candidate) bool {
		return containsAny(c.text, announcementPhrases) && !c.hasHiringWord()
	}},
}

// scoreRule is one phase-4 additive bonus on top of the base score.
type scoreRule struct {
	reason  string
	delta   int
	applies func(c candidate) bool
}

// scoreRules in evaluation order; reasons are appended in this order.
var scoreRules = []scoreRule{
	{"company voice (+10)", 10, func(c candidate) bool {
		return containsAny(c.text, companyVoicePhrases)
	}},
	{"has link (+10)", 10, func(c candidate) bool {
		return c.hasLink
	}},
	{"application form link (+10 bonus)", 10, func(c candidate) bool {
		return c.hasLink && containsAny(c.text, applicationFormMarkers)
	}},
	{"payment mentioned (+15)", 15, func(c candidate) bool {
		return containsAny(c.text, paymentPhrases)
	}},
	{"clear hiring role (+10)", 10, func(c candidate) bool {
		return containsAny(c.text, clearRolePhrases)
	}},
	{"verified author (+5)", 5, func(c candidate) bool {
		return c.verified
	}},
	{"organic engagement (+5)", 5, func(c candidate) bool {
		total := c.likes + c.reposts
		return total >= 3 && total <= 200
	}},
}
