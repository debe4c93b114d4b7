// Package site holds the page behaviour around the particle fields: the
// mobile navigation toggle, the donation form with its impact tiers, the
// contact form and its email relay, and the animated stat counters.
package site
