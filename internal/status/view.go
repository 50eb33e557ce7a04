package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderSettings(data),
		renderInstallation(data),
		renderRules(data),
		renderCacheInfo(data),
	}
	return strings.Join(sections, "\n\n")
}

func line(key, value string) string {
	return "   " + keyStyle.Render(key+": ") + value + "\n"
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version) + "\n")
	b.WriteString(titleStyle.Render("📂 Config directory: ") + valueStyle.Render(data.ConfigDir))
	return b.String()
}

func renderSettings(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Settings:") + "\n")

	switch {
	case data.SettingsError != "":
		b.WriteString(line("File", errorStyle.Render(data.SettingsFile+" ✗ "+data.SettingsError)))
		b.WriteString("   " + warningStyle.Render("The shim falls back to defaults") + "\n")
	case data.SettingsFile != "":
		b.WriteString(line("File", subtleStyle.Render(data.SettingsFile)))
	default:
		b.WriteString(line("File", subtleStyle.Render("none (defaults)")))
	}

	b.WriteString(line("Program", valueStyle.Render(data.Program)))
	b.WriteString(line("Name variable", valueStyle.Render(data.NameVar)))
	b.WriteString(line("Log level", valueStyle.Render(data.LogLevel)))
	if data.LogFile != "" {
		b.WriteString(line("Log file", subtleStyle.Render(data.LogFile)))
	}
	if data.Disabled {
		b.WriteString(line("Shim", warningStyle.Render("disabled (readline completes on its own)")))
	} else {
		b.WriteString(line("Shim", successStyle.Render("enabled")))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderInstallation(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔌 Installation:") + "\n")

	if data.HelperFound {
		b.WriteString(line("Helper", successStyle.Render("✓ ")+valueStyle.Render(data.HelperPath)))
	} else {
		b.WriteString(line("Helper", errorStyle.Render("✗ "+data.HelperPath+" not found in PATH")))
		b.WriteString("   " + warningStyle.Render("Readline keeps its own candidates until it is installed") + "\n")
	}

	if data.LibraryFound {
		b.WriteString(line("Library", successStyle.Render("✓ ")+valueStyle.Render(data.LibraryPath)))
	} else {
		b.WriteString(line("Library", errorStyle.Render("✗ "+data.LibraryPath+" not found")))
	}

	if data.Preloaded {
		b.WriteString(line("LD_PRELOAD", successStyle.Render("✓ active in this shell")))
	} else {
		b.WriteString(line("LD_PRELOAD", subtleStyle.Render("not set")))
		b.WriteString("   " + warningStyle.Render("Run 'rlcomplete env <program>' to start a program with the shim") + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderRules(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Rules:") + "\n")

	if data.RulesFile == "" {
		b.WriteString("   " + subtleStyle.Render("No rule file found, candidates pass through unchanged"))
		return b.String()
	}
	if data.RulesError != "" {
		b.WriteString(line("File", errorStyle.Render(data.RulesFile+" ✗")))
		b.WriteString("   " + errorStyle.Render(data.RulesError))
		return b.String()
	}

	b.WriteString(line("File", subtleStyle.Render(data.RulesFile)))
	for _, app := range data.Apps {
		b.WriteString("   " + keyStyle.Render(app.App) + "\n")
		for i, rule := range app.Rules {
			b.WriteString(fmt.Sprintf("      %d. %s %s%s\n",
				i+1,
				valueStyle.Render(rule.Name),
				subtleStyle.Render(ruleDetails(rule)),
				warningStyle.Render(rejectMark(rule))))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func ruleDetails(rule RuleInfo) string {
	parts := []string{rule.Action}
	if rule.Match != "" {
		parts = append(parts, "match /"+truncateString(rule.Match, 30)+"/")
	}
	if rule.When {
		parts = append(parts, "conditional")
	}
	if rule.Action != "reject" {
		parts = append(parts, "filter "+rule.Filter)
	}
	if rule.Cache > 0 {
		parts = append(parts, "cache "+rule.Cache.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func rejectMark(rule RuleInfo) string {
	if rule.Action == "reject" {
		return " ⛔"
	}
	return ""
}

func renderCacheInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("💾 Command cache:") + "\n")

	b.WriteString(line("Path", subtleStyle.Render(data.CachePath)))
	b.WriteString(line("Size", valueStyle.Render(formatBytes(data.CacheFileSize))))
	b.WriteString(line("Total entries", valueStyle.Render(fmt.Sprintf("%d", data.CacheTotalEntries))))
	if !data.CacheUpdated.IsZero() {
		b.WriteString(line("Updated", valueStyle.Render(data.CacheUpdated.Format("2006-01-02 15:04:05"))))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
