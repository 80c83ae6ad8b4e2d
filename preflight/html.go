package preflight

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

var externalLinkRe = regexp.MustCompile(`(?:href|src)="(https?://[^"]+)"`)

func (c *Checker) checkHTML(path string) []Result {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []Result{{
			Check:    "metadata",
			Severity: Error,
			Message:  "cannot read HTML file",
			Details:  err.Error(),
		}}
	}
	html := string(raw)
	lower := strings.ToLower(html)

	var results []Result

	if !strings.Contains(lower, "<title>") {
		results = append(results, Result{
			Check:         "metadata",
			Severity:      Warning,
			Message:       "page has no <title>",
			FixSuggestion: "set a title in the template data",
		})
	}
	if c.enabled("accessibility") {
		if !regexp.MustCompile(`<html[^>]+lang=`).MatchString(lower) {
			results = append(results, Result{
				Check:         "accessibility",
				Severity:      Warning,
				Message:       "html element declares no lang attribute",
				FixSuggestion: `add lang="en" (or the document language) to <html>`,
			})
		}
		imgs := strings.Count(lower, "<img")
		alts := strings.Count(lower, "alt=")
		if imgs > alts {
			results = append(results, Result{
				Check:         "accessibility",
				Severity:      Warning,
				Message:       fmt.Sprintf("%d of %d images have no alt text", imgs-alts, imgs),
				FixSuggestion: "add alt attributes to every image",
			})
		}
	}
	if c.enabled("links") {
		links := externalLinkRe.FindAllStringSubmatch(html, -1)
		if len(links) > 0 {
			hosts := map[string]bool{}
			for _, m := range links {
				if at := strings.Index(m[1][8:], "/"); at > 0 {
					hosts[m[1][:8+at]] = true
				} else {
					hosts[m[1]] = true
				}
			}
			hostList := lo.Keys(hosts)
			sort.Strings(hostList)
			results = append(results, Result{
				Check:    "links",
				Severity: Info,
				Message:  fmt.Sprintf("page references %d external resources across %d hosts", len(links), len(hosts)),
				Details:  strings.Join(hostList, ", "),
			})
		}
	}
	return results
}
