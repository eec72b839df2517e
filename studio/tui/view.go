package tui

import (
	"fmt"
	"strings"

	"echochamber/types"
	"echochamber/workflow"
)

// View implements tea.Model interface.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📣 EchoChamber Studio"))
	b.WriteString("\n\n")

	switch m.Screen {
	case ViewAuth:
		b.WriteString(m.authView())
	case ViewVerify:
		b.WriteString(m.verifyView())
	case ViewApp:
		b.WriteString(m.appView())
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("❌ " + m.Err.Error()))
		b.WriteString("\n")
	}
	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.Notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) authView() string {
	var b strings.Builder

	if m.AuthMode == ModeSignUp {
		b.WriteString(HighlightStyle.Render("Create an account"))
	} else {
		b.WriteString(HighlightStyle.Render("Log in"))
	}
	b.WriteString("\n\n")

	b.WriteString(field("Email", m.Email, m.Focus == 0, false))
	b.WriteString("\n")
	b.WriteString(field("Password", m.Password, m.Focus == 1, true))
	b.WriteString("\n\n")

	if m.Busy {
		b.WriteString(StatusStyle.Render("Working..."))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render("Enter to submit | Tab to switch field | Ctrl+S to toggle login/signup | Ctrl+C to quit"))
	return b.String()
}

func (m Model) verifyView() string {
	var b strings.Builder
	b.WriteString(HighlightStyle.Render("Verify your account"))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("A verification token for %s was written to the server log.", m.Email)))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Enter to verify and log in | Esc to go back"))
	return b.String()
}

func (m Model) appView() string {
	var b strings.Builder

	if m.User != nil {
		b.WriteString(InfoStyle.Render("Logged in as " + m.User.Email))
		b.WriteString("\n\n")
	}

	b.WriteString(field("Source", m.Source, m.Phase != workflow.PhaseLoading, false))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Paste a YouTube URL, a blog post URL, or a local audio/video file path"))
	b.WriteString("\n\n")

	switch m.Phase {
	case workflow.PhaseLoading:
		b.WriteString(StatusStyle.Render("⏳ " + m.loadingMessage()))
		b.WriteString("\n\n")
		b.WriteString(m.logsView())
	case workflow.PhaseResult:
		if m.Assets != nil {
			b.WriteString(m.resultView())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) logsView() string {
	if len(m.Logs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
	b.WriteString("\n")
	logs := m.Logs
	if len(logs) > 5 {
		logs = logs[len(logs)-5:]
	}
	for _, entry := range logs {
		b.WriteString(InfoStyle.Render("   " + entry.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) resultView() string {
	var b strings.Builder

	var tabs []string
	for i, name := range resultTabs {
		if i == m.ActiveTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, TabStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	b.WriteString(BoxStyle.Render(m.tabContent()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) tabContent() string {
	a := m.Assets
	switch resultTabs[m.ActiveTab] {
	case "Summary":
		header := fmt.Sprintf("%s — %s\n\n", a.InputType, a.Source)
		return header + orEmpty(a.Summary)
	case "Transcript":
		return clip(orEmpty(a.Transcript), 2000)
	case "Takeaways":
		if len(a.KeyTakeaways) == 0 {
			return "No takeaways generated."
		}
		var b strings.Builder
		for _, t := range a.KeyTakeaways {
			b.WriteString("• " + t + "\n")
		}
		return b.String()
	case "Clips":
		return clipsContent(a.VideoClips)
	case "Audiograms":
		return audiogramsContent(a.Audiograms)
	case "Social":
		return socialContent(a.SocialPosts)
	case "Email":
		return orEmpty(a.EmailDraft)
	case "Strategy":
		return strategyContent(a)
	}
	return ""
}

func clipsContent(clips []types.VideoClip) string {
	if len(clips) == 0 {
		return "No video clips generated."
	}
	var b strings.Builder
	for _, c := range clips {
		b.WriteString(fmt.Sprintf("%s  [%s – %s]  virality %.0f\n", c.Title, timestamp(c.StartTime), timestamp(c.EndTime), c.ViralityScore))
		if c.Hook != "" {
			b.WriteString("  Hook: " + c.Hook + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func audiogramsContent(grams []types.Audiogram) string {
	if len(grams) == 0 {
		return "No audiograms generated."
	}
	var b strings.Builder
	for _, g := range grams {
		b.WriteString(fmt.Sprintf("%s  [%s – %s]\n", g.Title, timestamp(g.StartTime), timestamp(g.EndTime)))
		if g.Summary != "" {
			b.WriteString("  " + g.Summary + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func socialContent(posts []types.SocialPost) string {
	if len(posts) == 0 {
		return "No social posts generated."
	}
	var b strings.Builder
	for _, p := range posts {
		b.WriteString(HighlightStyle.Render(p.Platform))
		b.WriteString("\n" + p.Content + "\n\n")
	}
	return b.String()
}

func strategyContent(a *types.GeneratedAssets) string {
	var b strings.Builder
	if cs := a.CampaignStrategy; cs != nil {
		b.WriteString("Campaign\n")
		b.WriteString("  Audience: " + cs.TargetAudience + "\n")
		b.WriteString("  Voice: " + cs.BrandVoice + "\n")
		if len(cs.ContentPillars) > 0 {
			b.WriteString("  Pillars: " + strings.Join(cs.ContentPillars, ", ") + "\n")
		}
		b.WriteString("  Schedule: " + cs.PostingSchedule + "\n\n")
	}
	if ss := a.SeoStrategy; ss != nil {
		b.WriteString("SEO\n")
		b.WriteString("  Primary keyword: " + ss.PrimaryKeyword + "\n")
		if len(ss.SecondaryKeywords) > 0 {
			b.WriteString("  Secondary: " + strings.Join(ss.SecondaryKeywords, ", ") + "\n")
		}
		if len(ss.SuggestedTags) > 0 {
			b.WriteString("  Tags: " + strings.Join(ss.SuggestedTags, ", ") + "\n")
		}
		b.WriteString("  Meta: " + ss.MetaDescription + "\n")
	}
	if b.Len() == 0 {
		return "No strategy generated."
	}
	return b.String()
}

func (m Model) footer() string {
	if m.Assets != nil {
		return InfoStyle.Render("←/→ switch tab | Ctrl+D save bundle | Ctrl+R reset | Esc log out | Ctrl+C quit")
	}
	return InfoStyle.Render("Enter to analyze | Esc log out | Ctrl+C quit")
}

// field renders a labelled input line with a cursor on the focused one.
func field(label, value string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("*", len(value))
	}
	cursor := " "
	if focused {
		cursor = "▌"
	}
	return fmt.Sprintf("%s: %s%s", InfoStyle.Render(label), shown, cursor)
}

func timestamp(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Nothing generated for this panel."
	}
	return s
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
