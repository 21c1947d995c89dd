package fmcsa

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

var (
	numberPattern = regexp.MustCompile(`(\d+)`)
	statePattern  = regexp.MustCompile(`\b([A-Z]{2})\b`)
)

// Lookup resolves one MC number against the carrier search page and parses
// the result into a raw snapshot. Implements interfaces.CarrierSource.
func (c *Client) Lookup(ctx context.Context, mcNumber string) (*models.CarrierSnapshot, error) {
	doc, err := c.fetch(ctx, mcNumber)
	if err != nil {
		return nil, err
	}

	// A missing-carrier page renders an error section instead of results
	if errText := selectText(doc, ".error-message"); errText != "" {
		lower := strings.ToLower(errText)
		if strings.Contains(lower, "not found") || strings.Contains(lower, "no results") {
			return nil, &NotFoundError{MCNumber: mcNumber}
		}
	}

	snapshot := c.parseCarrierPage(doc, mcNumber)

	if c.logger != nil {
		c.logger.Debug().
			Str("mc_number", mcNumber).
			Str("company", snapshot.CompanyName).
			Msg("Parsed carrier search result")
	}

	return snapshot, nil
}

// parseCarrierPage extracts the raw carrier fields from a result page.
// Absent elements leave the corresponding fields empty or zero.
func (c *Client) parseCarrierPage(doc *goquery.Document, mcNumber string) *models.CarrierSnapshot {
	snapshot := &models.CarrierSnapshot{
		MCNumber: mcNumber,
	}

	snapshot.CompanyName = selectText(doc, ".company-name, h2, .carrier-name")
	snapshot.DOTNumber = selectText(doc, "#lblDOTNumber, .dot-number")
	snapshot.AuthorityStatus = selectText(doc, ".authority-status, #lblAuthorityStatus")
	snapshot.AuthorityType = selectText(doc, ".authority-type, #lblAuthorityType")
	snapshot.AuthorityDate = selectText(doc, ".authority-date, #lblAuthorityDate")
	snapshot.InsuranceExpiry = selectText(doc, ".insurance-expiry, #lblInsuranceExpiry")
	snapshot.Phone = selectText(doc, ".phone, .contact-phone")
	snapshot.Email = selectText(doc, ".email, .contact-email")

	if insText := selectText(doc, ".insurance-status, #lblInsuranceStatus"); insText != "" {
		if strings.Contains(strings.ToLower(insText), "active") {
			snapshot.InsuranceStatus = "Active"
		} else {
			snapshot.InsuranceStatus = "Expired"
		}
	}

	if ratingText := selectText(doc, ".safety-rating, #lblSafetyRating, .rating"); ratingText != "" {
		if m := numberPattern.FindString(ratingText); m != "" {
			snapshot.SafetyRating = m
		}
	}

	snapshot.Violations12Mo = selectCount(doc, ".violations-count, #lblViolations12mo")
	snapshot.Accidents12Mo = selectCount(doc, ".accidents-count, #lblAccidents12mo")

	snapshot.State = selectText(doc, ".state, .carrier-state, .address-state")
	if snapshot.State == "" {
		// Fall back to a two-letter state code inside the address block
		if addr := selectText(doc, ".address, .carrier-address"); addr != "" {
			if m := statePattern.FindString(addr); m != "" {
				snapshot.State = m
			}
		}
	}

	return snapshot
}

// selectText returns the trimmed text of the first element matching the
// selector, or empty string.
func selectText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// selectCount extracts the first integer found in the matched element.
func selectCount(doc *goquery.Document, selector string) int {
	text := selectText(doc, selector)
	if text == "" {
		return 0
	}
	m := numberPattern.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
