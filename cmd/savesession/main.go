// Opens a visible browser on the X login page, waits for a manual login,
// and saves the resulting storage state for the engine to reuse.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-gighunt-engine/internal/browser"
)

const loginTimeout = 5 * time.Minute

func main() {
	outPath := flag.String("out", "data/auth.json", "where to write the auth state")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("❌ Cannot create %s: %v", filepath.Dir(*outPath), err)
	}

	mgr, err := browser.NewManager(false)
	if err != nil {
		log.Fatalf("❌ Browser launch failed: %v", err)
	}
	defer mgr.Close()

	ctx, err := mgr.NewContext(nil)
	if err != nil {
		log.Fatalf("❌ Context creation failed: %v", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		log.Fatalf("❌ Page creation failed: %v", err)
	}

	if _, err := page.Goto("https://x.com/login"); err != nil {
		log.Fatalf("❌ Could not open login page: %v", err)
	}

	log.Println("🔐 Log in to X in the opened browser window...")

	deadline := time.Now().Add(loginTimeout)
	for {
		if time.Now().After(deadline) {
			log.Fatalf("❌ Timed out after %s waiting for login", loginTimeout)
		}
		if hasAuthToken(ctx) {
			break
		}
		time.Sleep(2 * time.Second)
	}

	if _, err := ctx.StorageState(*outPath); err != nil {
		log.Fatalf("❌ Failed to save auth state: %v", err)
	}
	log.Printf("✅ Auth session saved to %s", *outPath)
}

func hasAuthToken(ctx playwright.BrowserContext) bool {
	cookies, err := ctx.Cookies()
	if err != nil {
		return false
	}
	for _, c := range cookies {
		if c.Name == "auth_token" && c.Value != "" {
			return true
		}
	}
	return false
}
