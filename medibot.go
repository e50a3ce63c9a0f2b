// Package medibot provides a doctor recommendation chatbot backed by a small
// static doctor directory. Users describe symptoms and get matching doctors
// with an LLM-written summary, ask free-form questions, or browse doctors by
// specialization.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, yaml/).
package medibot
