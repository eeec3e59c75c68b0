// Package legisdoc resolves procedural compliance documents (plain-language
// summaries and committee vote records) for legislative bills. Given a bill
// and a document kind it searches a fixed set of location strategies in a
// learned priority order, routes discovered candidates through a
// human/oracle confirmation gate, and caches both the downloaded documents
// and the resolution outcomes.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., jsonstate/, goquery/, gemini/).
package legisdoc
