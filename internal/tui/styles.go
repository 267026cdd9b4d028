package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the interview UI.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// TerminatedStyle renders the termination overlay.
	TerminatedStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(errorColor)).
			Foreground(lipgloss.Color(errorColor)).
			Bold(true).
			Padding(1, 3)

	// ActiveTabStyle renders the active tab.
	ActiveTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)

	// InactiveTabStyle renders inactive tabs.
	InactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151")).
				Foreground(lipgloss.Color("#9CA3AF")).
				Padding(0, 2)

	// InterviewerStyle renders interviewer turns.
	InterviewerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(primaryColor)).
				Bold(true)

	// CandidateStyle renders candidate turns.
	CandidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor)).
			Bold(true)

	// SystemStyle renders system notices inside a transcript.
	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor)).
			Italic(true)
)

// Warning pip variables (pre-rendered strings).
var (
	// WarnFilled marks an issued warning.
	WarnFilled = WarningStyle.Render("●")

	// WarnEmpty marks a warning slot not yet used.
	WarnEmpty = DimStyle.Render("○")

	// StatusLive indicates a connected session.
	StatusLive = SuccessStyle.Render("●")

	// StatusDegraded indicates a session running without camera frames.
	StatusDegraded = WarningStyle.Render("●")

	// StatusEnded indicates a finished session.
	StatusEnded = ErrorStyle.Render("●")
)
