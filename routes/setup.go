/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"time"

	"github.com/amangit2224/medlens/trends"
)

// ReportSummarizer produces a plain-language summary for an uploaded report.
type ReportSummarizer interface {
	SummarizeReport(ctx context.Context, filename, content string) (string, error)
}

// TermExplainer explains a medical term in plain language.
type TermExplainer interface {
	ExplainTerm(ctx context.Context, term string) (string, error)
}

// Options configures the handlers.
type Options struct {
	// Summarizer is optional. Without it reports are stored as uploaded.
	Summarizer ReportSummarizer
	// Explainer is optional. Without it the explain endpoint is unavailable.
	Explainer TermExplainer
	// LowerIsBetter overrides the tests where a decrease is an improvement.
	LowerIsBetter []string
	// JWTSecret signs API tokens.
	JWTSecret []byte
	// TokenTTL is the lifetime of API tokens. Zero means 24 hours.
	TokenTTL time.Duration
}

const defaultTokenTTL = 24 * time.Hour

var (
	summarizer ReportSummarizer
	explainer  TermExplainer
	extractor  = trends.NewExtractor()
	comparer   = trends.NewComparer(nil)
	apiTokens  *tokenIssuer
)

// Configure installs the handler dependencies. It must be called before the
// server starts.
func Configure(opts Options) error {
	issuer, err := newTokenIssuer(opts.JWTSecret, opts.TokenTTL)
	if err != nil {
		return err
	}

	summarizer = opts.Summarizer
	explainer = opts.Explainer
	comparer = trends.NewComparer(opts.LowerIsBetter)
	apiTokens = issuer

	return nil
}
