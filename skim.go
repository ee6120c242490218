// Package skim turns a web page into a short summary plus a handful of
// key-point sentences lifted verbatim from the article.
//
// The pipeline has two independent stages: extraction (URL to readable
// text) and summarization (text to summary, key points and stats).
//
// This package contains domain types, interfaces and pure domain logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., readability/,
// huggingface/, gemini/).
package skim
