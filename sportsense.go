// Package sportsense provides a local, CLI-based sports news assistant.
// It collects news articles and match statistics from configured sources,
// indexes them for semantic retrieval, persists them in SQLite, generates
// daily LLM-written reports, and answers natural language questions over
// the indexed corpus.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, openai/, trafilatura/);
// orchestration lives in pipeline/ and collect/.
package sportsense
