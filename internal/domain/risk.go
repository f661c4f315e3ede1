package domain

import "strings"

// Risk is the closed risk enumeration. Backend labels are mapped onto it once,
// in ParseRisk; everything downstream compares Risk values exactly.
type Risk string

const (
	RiskIndeterminate Risk = "INDETERMINATE"
	RiskLow           Risk = "LOW"
	RiskMedium        Risk = "MEDIUM"
	RiskHigh          Risk = "HIGH"
	RiskCritical      Risk = "CRITICAL"
)

// Rank orders risks from least to most severe.
func (r Risk) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// Flagged reports whether the risk alone puts a project under investigation.
func (r Risk) Flagged() bool {
	return r == RiskHigh || r == RiskCritical
}

// Color is the triage color shown next to a project.
type Color string

const (
	ColorRed    Color = "RED"
	ColorYellow Color = "YELLOW"
	ColorGreen  Color = "GREEN"
	ColorGrey   Color = "GREY"
)

// Color returns the triage color of the risk.
func (r Risk) Color() Color {
	switch r {
	case RiskCritical:
		return ColorRed
	case RiskHigh:
		return ColorYellow
	case RiskLow, RiskMedium:
		return ColorGreen
	default:
		return ColorGrey
	}
}

// Description returns the triage guidance text for the risk.
func (r Risk) Description() string {
	switch r {
	case RiskCritical:
		return "IMMEDIATE INVESTIGATION. Strong, confirmed evidence of fraud."
	case RiskHigh:
		return "PRIORITY INVESTIGATION. Serious red flags are present."
	case RiskLow, RiskMedium:
		return "CONTINUOUS MONITORING. Low-level anomalies."
	default:
		return "No risk assessment available."
	}
}

// ParseRisk maps a free-form backend label onto Risk using a widening,
// case-insensitive substring match:
//
//	contains CRITICAL             -> CRITICAL  ("AI CRITICAL")
//	contains HIGH or SUSPICIOUS   -> HIGH
//	contains MEDIUM               -> MEDIUM
//	contains LOW                  -> LOW
//	anything else, or empty       -> INDETERMINATE
//
// The precedence matters: "CRITICAL" is checked before "HIGH" so a label such
// as "HIGH/CRITICAL" lands in the more severe class.
func ParseRisk(label string) Risk {
	l := strings.ToUpper(strings.TrimSpace(label))
	switch {
	case l == "":
		return RiskIndeterminate
	case strings.Contains(l, "CRITICAL"):
		return RiskCritical
	case strings.Contains(l, "HIGH"), strings.Contains(l, "SUSPICIOUS"):
		return RiskHigh
	case strings.Contains(l, "MEDIUM"):
		return RiskMedium
	case strings.Contains(l, "LOW"):
		return RiskLow
	default:
		return RiskIndeterminate
	}
}

// ParseColor maps a backend color hint onto Color. Unknown hints return false.
func ParseColor(hint string) (Color, bool) {
	switch strings.ToUpper(strings.TrimSpace(hint)) {
	case "RED":
		return ColorRed, true
	case "YELLOW":
		return ColorYellow, true
	case "GREEN":
		return ColorGreen, true
	case "GREY", "GRAY":
		return ColorGrey, true
	default:
		return "", false
	}
}

// Triage reproduces the backend's label for a raw database row from its
// maximum finding severity and its suspicion score:
//
//   - UNDER_INVESTIGATION or VAGUENESS severity, or no severity and a zero
//     score: INDETERMINATE
//   - CRITICAL severity or score >= 80: CRITICAL
//   - HIGH severity or score >= 60: HIGH
//   - otherwise: LOW
//
// Triage is only for rows that have not been through the backend; records that
// already carry a label go through ParseRisk.
func Triage(severity string, score float64) Risk {
	sev := strings.ToUpper(strings.TrimSpace(severity))
	switch {
	case sev == "" && score == 0:
		return RiskIndeterminate
	case sev == "UNDER_INVESTIGATION" || sev == "VAGUENESS":
		return RiskIndeterminate
	case sev == "CRITICAL" || score >= 80:
		return RiskCritical
	case sev == "HIGH" || score >= 60:
		return RiskHigh
	default:
		return RiskLow
	}
}
