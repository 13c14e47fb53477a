// Package model defines data structures for the shopping assistant.
package model

import (
	"github.com/shopspring/decimal"
)

// Product is a single recommended catalog item. Immutable once normalized
// from a backend response; identity is the ID, unique within a set.
type Product struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Rating  float64         `json:"rating"`
	Pros    []string        `json:"pros"`
	Cons    []string        `json:"cons"`
	InStock bool            `json:"inStock"`
}

// RecommendationSet is the structured AI response to a product query.
// Replaced wholesale on each successful query.
type RecommendationSet struct {
	Recommendations  []Product `json:"recommendations"`
	FollowUpQuestion string    `json:"followUpQuestion"`
}

// QueryState is the tagged state of the recommendation query machine.
type QueryState string

const (
	QueryIdle         QueryState = "idle"
	QueryLoading      QueryState = "loading"
	QueryResultsReady QueryState = "resultsReady"
	QueryErrored      QueryState = "errored"
)
