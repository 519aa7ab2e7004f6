package web

import "embed"

// Templates holds the server-rendered storefront and admin pages:
// layouts, partials, and one file per page.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the stylesheet and the placeholder product art, served
// straight from the binary so deploys stay a single artifact.
//
//go:embed static/**/*
var Static embed.FS
