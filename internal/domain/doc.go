// Package domain models the infrastructure project records behind the HYDRA
// anti-corruption dashboard and the pure derivations the dashboard needs.
//
// # Data Source
//
// Project records originate from the HYDRA backend, which scores public works
// contracts for suspicion and serves them over REST. The records reach this
// service as flat JSON on the Kafka source topic, either relayed from the
// backend or imported from its SQLite database by hydractl.
//
// # Record Conventions
//
// Field names drift between endpoints and schema versions:
//
//	name        | project_description | projectDescription | description
//	risk        | risk_level          | max_severity       | maxSeverity
//	score       | suspicion_score     | risk_score
//	color       | color_triage
//	budget      | contract_cost
//	end_date    | completion_date
//
// Keys are compared case-insensitively with underscores ignored, so
// "start_date" and "startDate" are the same field. ParseRawEvent resolves all
// synonyms once; nothing downstream looks at raw field names.
//
// Numbers may arrive as JSON numbers or strings ("92", "₱ 1,250,000.00").
// "N/A", empty strings and NaN are treated as absent.
//
// Dates arrive as "2024-02-15", "02/15/2024" (month first) or RFC 3339.
//
// # Risk Labels
//
// The backend vocabulary is open: "Critical", "AI CRITICAL", "High",
// "SUSPICIOUS", "Medium", "Low", "Indeterminate", "UNDER_INVESTIGATION".
// ParseRisk maps any label onto the closed Risk enumeration with a widening
// substring match; see ParseRisk for the exact precedence.
//
// # Derivations
//
// GroupBySeverity and RenderOrder drive the map layer, ToSlider and ToDate
// drive the satellite imagery timeline, and the analytics helpers feed the
// dashboard cards. All of them are pure functions of their inputs and never
// fail on malformed data.
package domain
