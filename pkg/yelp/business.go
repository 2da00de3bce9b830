package yelp

import (
	"encoding/json"
	"fmt"
)

// Business is a single business document as returned by the business and
// search endpoints. Search results omit reviews and some deal detail.
type Business struct {
	ID                string            `json:"id" yaml:"id"`
	IsClaimed         bool              `json:"is_claimed" yaml:"is_claimed"`
	IsClosed          bool              `json:"is_closed" yaml:"is_closed"`
	Name              string            `json:"name" yaml:"name"`
	ImageURL          string            `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	URL               string            `json:"url,omitempty" yaml:"url,omitempty"`
	MobileURL         string            `json:"mobile_url,omitempty" yaml:"mobile_url,omitempty"`
	Phone             string            `json:"phone,omitempty" yaml:"phone,omitempty"`
	DisplayPhone      string            `json:"display_phone,omitempty" yaml:"display_phone,omitempty"`
	ReviewCount       int               `json:"review_count" yaml:"review_count"`
	Categories        []Category        `json:"categories,omitempty" yaml:"categories,omitempty"`
	Distance          float64           `json:"distance,omitempty" yaml:"distance,omitempty"`
	Rating            float64           `json:"rating" yaml:"rating"`
	RatingImgURL      string            `json:"rating_img_url,omitempty" yaml:"rating_img_url,omitempty"`
	RatingImgURLSmall string            `json:"rating_img_url_small,omitempty" yaml:"rating_img_url_small,omitempty"`
	RatingImgURLLarge string            `json:"rating_img_url_large,omitempty" yaml:"rating_img_url_large,omitempty"`
	SnippetText       string            `json:"snippet_text,omitempty" yaml:"snippet_text,omitempty"`
	SnippetImageURL   string            `json:"snippet_image_url,omitempty" yaml:"snippet_image_url,omitempty"`
	Location          *Location         `json:"location,omitempty" yaml:"location,omitempty"`
	Deals             []Deal            `json:"deals,omitempty" yaml:"deals,omitempty"`
	GiftCertificates  []GiftCertificate `json:"gift_certificates,omitempty" yaml:"gift_certificates,omitempty"`
	MenuProvider      string            `json:"menu_provider,omitempty" yaml:"menu_provider,omitempty"`
	MenuDateUpdated   int64             `json:"menu_date_updated,omitempty" yaml:"menu_date_updated,omitempty"`
	Reviews           []Review          `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Eat24URL          string            `json:"eat24_url,omitempty" yaml:"eat24_url,omitempty"`
}

// Category is sent by the API as a ["Display Name", "alias"] pair.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Alias string `json:"alias" yaml:"alias"`
}

// UnmarshalJSON accepts the API's two-element array and, for re-encoded
// output, the object form.
func (c *Category) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("category: expected [name, alias], got %d elements", len(pair))
		}
		c.Name, c.Alias = pair[0], pair[1]
		return nil
	}

	type plain Category
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	*c = Category(obj)
	return nil
}

// Location is the postal and geographic location of a business.
type Location struct {
	Address        []string `json:"address,omitempty" yaml:"address,omitempty"`
	DisplayAddress []string `json:"display_address,omitempty" yaml:"display_address,omitempty"`
	City           string   `json:"city,omitempty" yaml:"city,omitempty"`
	StateCode      string   `json:"state_code,omitempty" yaml:"state_code,omitempty"`
	PostalCode     string   `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	CountryCode    string   `json:"country_code,omitempty" yaml:"country_code,omitempty"`
	CrossStreets   string   `json:"cross_streets,omitempty" yaml:"cross_streets,omitempty"`
	Neighborhoods  []string `json:"neighborhoods,omitempty" yaml:"neighborhoods,omitempty"`
	Coordinate     *LatLong `json:"coordinate,omitempty" yaml:"coordinate,omitempty"`
	GeoAccuracy    float64  `json:"geo_accuracy,omitempty" yaml:"geo_accuracy,omitempty"`
}

type Deal struct {
	ID                     string       `json:"id" yaml:"id"`
	Title                  string       `json:"title" yaml:"title"`
	URL                    string       `json:"url,omitempty" yaml:"url,omitempty"`
	ImageURL               string       `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	CurrencyCode           string       `json:"currency_code,omitempty" yaml:"currency_code,omitempty"`
	TimeStart              int64        `json:"time_start,omitempty" yaml:"time_start,omitempty"`
	TimeEnd                int64        `json:"time_end,omitempty" yaml:"time_end,omitempty"`
	IsPopular              bool         `json:"is_popular,omitempty" yaml:"is_popular,omitempty"`
	WhatYouGet             string       `json:"what_you_get,omitempty" yaml:"what_you_get,omitempty"`
	ImportantRestrictions  string       `json:"important_restrictions,omitempty" yaml:"important_restrictions,omitempty"`
	AdditionalRestrictions string       `json:"additional_restrictions,omitempty" yaml:"additional_restrictions,omitempty"`
	Options                []DealOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// DealOption prices are in cents.
type DealOption struct {
	Title                  string `json:"title" yaml:"title"`
	PurchaseURL            string `json:"purchase_url,omitempty" yaml:"purchase_url,omitempty"`
	Price                  int    `json:"price" yaml:"price"`
	FormattedPrice         string `json:"formatted_price,omitempty" yaml:"formatted_price,omitempty"`
	OriginalPrice          int    `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	FormattedOriginalPrice string `json:"formatted_original_price,omitempty" yaml:"formatted_original_price,omitempty"`
	IsQuantityLimited      bool   `json:"is_quantity_limited,omitempty" yaml:"is_quantity_limited,omitempty"`
	RemainingCount         int    `json:"remaining_count,omitempty" yaml:"remaining_count,omitempty"`
}

type GiftCertificate struct {
	ID             string                  `json:"id" yaml:"id"`
	URL            string                  `json:"url,omitempty" yaml:"url,omitempty"`
	ImageURL       string                  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	CurrencyCode   string                  `json:"currency_code,omitempty" yaml:"currency_code,omitempty"`
	UnusedBalances string                  `json:"unused_balances,omitempty" yaml:"unused_balances,omitempty"`
	Options        []GiftCertificateOption `json:"options,omitempty" yaml:"options,omitempty"`
}

type GiftCertificateOption struct {
	Price          int    `json:"price" yaml:"price"`
	FormattedPrice string `json:"formatted_price,omitempty" yaml:"formatted_price,omitempty"`
}

type Review struct {
	ID                  string  `json:"id" yaml:"id"`
	Rating              float64 `json:"rating" yaml:"rating"`
	RatingImageURL      string  `json:"rating_image_url,omitempty" yaml:"rating_image_url,omitempty"`
	RatingImageSmallURL string  `json:"rating_image_small_url,omitempty" yaml:"rating_image_small_url,omitempty"`
	RatingImageLargeURL string  `json:"rating_image_large_url,omitempty" yaml:"rating_image_large_url,omitempty"`
	Excerpt             string  `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	TimeCreated         int64   `json:"time_created,omitempty" yaml:"time_created,omitempty"`
	User                *User   `json:"user,omitempty" yaml:"user,omitempty"`
}

type User struct {
	ID       string `json:"id" yaml:"id"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Name     string `json:"name" yaml:"name"`
}
