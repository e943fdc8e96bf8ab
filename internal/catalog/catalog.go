// Static category taxonomy used for searching, plus the mapping onto the
// smaller output taxonomy leads are stored under. Defined at process start,
// never mutated.

package catalog

import "sort"

// Category describes one searchable slice of the taxonomy.
type Category struct {
	Key      string
	Name     string
	Keywords []string
	Priority int // 1 = highest
	Cadence  string
}

var categories = []Category{
	{
		Key:  "topTier",
		Name: "Ambassador & KOL Programs",
		Keywords: []string{
			"ambassador program", "brand ambassador", "crypto ambassador",
			"KOL program", "KOL wanted", "seeking KOLs",
			"influencer program", "crypto influencer",
			"#Ambassador", "#AmbassadorProgram", "#KOL",
		},
		Priority: 1,
		Cadence:  "every-30min",
	},
	{
		Key:  "community",
		Name: "Community Management",
		Keywords: []string{
			"community manager", "community lead", "community moderator",
			"discord moderator", "discord manager", "telegram moderator",
			"mod wanted", "hiring moderator",
			"#CommunityManager",
		},
		Priority: 2,
		Cadence:  "hourly",
	},
	{
		Key:  "socialMedia",
		Name: "Social Media Management",
		Keywords: []string{
			"social media manager", "SMM", "social media specialist",
			"twitter manager", "instagram manager",
			"social media marketing", "#SocialMediaManager", "#SMM",
		},
		Priority: 2,
		Cadence:  "hourly",
	},
	{
		Key:  "contentCreation",
		Name: "Content Creation",
		Keywords: []string{
			"content creator", "video creator", "youtube creator",
			"tiktok creator", "UGC creator",
			"video editor", "motion designer",
			"#ContentCreator", "#VideoEditor",
		},
		Priority: 3,
		Cadence:  "2-hours",
	},
	{
		Key:  "marketing",
		Name: "Marketing & Growth",
		Keywords: []string{
			"marketing manager", "growth manager", "digital marketer",
			"crypto marketing", "web3 marketing",
			"growth hacker", "performance marketer",
			"#Marketing", "#GrowthHacking",
		},
		Priority: 3,
		Cadence:  "2-hours",
	},
	{
		Key:  "writing",
		Name: "Content Writing",
		Keywords: []string{
			"content writer", "copywriter", "technical writer",
			"crypto writer", "web3 writer", "blog writer",
			"newsletter writer", "thread writer",
		},
		Priority: 3,
		Cadence:  "2-hours",
	},
	{
		Key:  "design",
		Name: "Design & Creative",
		Keywords: []string{
			"graphic designer", "UI designer", "UX designer",
			"brand designer", "NFT designer",
			"illustrator", "3D artist", "#GraphicDesigner",
		},
		Priority: 4,
		Cadence:  "3-hours",
	},
	{
		Key:  "internships",
		Name: "Internships",
		Keywords: []string{
			"internship", "intern wanted", "hiring intern",
			"paid internship", "remote internship",
			"marketing intern", "community intern",
			"#Internship", "#InternshipOpportunity",
		},
		Priority: 4,
		Cadence:  "3-hours",
	},
	{
		Key:  "operations",
		Name: "Operations & Support",
		Keywords: []string{
			"project manager", "operations manager",
			"customer support", "virtual assistant",
			"program manager", "product coordinator",
		},
		Priority: 5,
		Cadence:  "4-hours",
	},
	{
		Key:  "general",
		Name: "General Hiring Posts",
		Keywords: []string{
			"we're hiring", "we are hiring", "now hiring",
			"hiring now", "join our team", "positions open",
			"career opportunity", "#Web3Jobs", "#CryptoJobs",
			"#RemoteJobs", "#NowHiring", "#WeAreHiring",
		},
		Priority: 1,
		Cadence:  "every-30min",
	},
}

// outputMapping maps raw search categories onto the fixed output taxonomy.
var outputMapping = map[string]string{
	"topTier":         "ambassador",
	"community":       "community",
	"socialMedia":     "content",
	"contentCreation": "creator",
	"marketing":       "marketing",
	"writing":         "writing",
	"design":          "design",
	"internships":     "internship",
	"operations":      "other",
	"general":         "other",
}

// RotationKeys is the ordered subset the rotation job cycles through.
var RotationKeys = []string{"topTier", "community", "socialMedia", "contentCreation"}

// All returns every category sorted by ascending priority. The slice is a
// copy; callers may reorder it freely.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Get looks up a category by key.
func Get(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// ByPriority returns the categories with exactly the given priority,
// in declaration order.
func ByPriority(priority int) []Category {
	var out []Category
	for _, c := range categories {
		if c.Priority == priority {
			out = append(out, c)
		}
	}
	return out
}

// MapToOutput maps a raw category key to its output taxonomy value.
// Unknown keys map to "other", so the mapping is total.
func MapToOutput(key string) string {
	if mapped, ok := outputMapping[key]; ok {
		return mapped
	}
	return "other"
}
