package book

import (
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
)

// Book is a title the admin chose to keep from a search session.
type Book struct {
	ID              int64          `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Author          string         `db:"author" json:"author"`
	Description     string         `db:"description" json:"description"`
	Category        string         `db:"category" json:"category"`
	Status          Status         `db:"status" json:"status"`
	DownloadURL     string         `db:"download_url" json:"download_url"`
	CoverImageURL   string         `db:"cover_image_url" json:"cover_image_url"`
	ISBN            string         `db:"isbn" json:"isbn"`
	PublicationDate string         `db:"publication_date" json:"publication_date"`
	Publisher       string         `db:"publisher" json:"publisher"`
	Language        string         `db:"language" json:"language"`
	AISummary       string         `db:"ai_summary" json:"ai_summary"`
	Categories      pq.StringArray `db:"categories" json:"categories"`
	ViewCount       int            `db:"view_count" json:"view_count"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

type VerificationStatus string

const (
	Unverified VerificationStatus = "unverified"
	Verified   VerificationStatus = "verified"
	Failed     VerificationStatus = "failed"
)

type LinkKind string

const (
	// LinkDirect points straight at a retrievable file.
	LinkDirect LinkKind = "direct"
	// LinkPage points at a catalog landing page that may serve the file.
	LinkPage LinkKind = "page"
)

// Link is one candidate download location for a record.
type Link struct {
	URL  string   `json:"url"`
	Kind LinkKind `json:"kind"`
}

// SearchResult is the normalized record every catalog adapter projects its
// native response into. The aggregator scores, deduplicates and verifies
// these; only verified records reach the caller.
type SearchResult struct {
	ID              int64          `db:"id" json:"id"`
	SearchSession   string         `db:"search_session" json:"search_session"`
	Title           string         `db:"title" json:"title"`
	Author          string         `db:"author" json:"author"`
	Description     string         `db:"description" json:"description"`
	Categories      pq.StringArray `db:"categories" json:"categories"`
	CoverImageURL   string         `db:"cover_image_url" json:"cover_image_url"`
	ISBN            string         `db:"isbn" json:"isbn"`
	PublicationDate string         `db:"publication_date" json:"publication_date"`
	Publisher       string         `db:"publisher" json:"publisher"`
	Language        string         `db:"language" json:"language"`
	SourceAPI       string         `db:"source_api" json:"source_api"`
	ExternalID      string         `db:"external_id" json:"external_id"`
	RelevanceScore  float64        `db:"relevance_score" json:"relevance_score"`

	Status      VerificationStatus `db:"status" json:"status"`
	VerifiedURL string             `db:"verified_url" json:"verified_url"`

	// Links holds the unverified candidates while the record is in flight;
	// only the verified URL is persisted.
	Links []Link `db:"-" json:"links,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AddLink appends a candidate keeping direct links ahead of page links, so
// verification tries the likelier candidates first.
func (r *SearchResult) AddLink(l Link) {
	if l.URL == "" {
		return
	}
	for _, existing := range r.Links {
		if existing.URL == l.URL {
			return
		}
	}
	if l.Kind == LinkDirect {
		// Insert after the last direct link.
		i := 0
		for i < len(r.Links) && r.Links[i].Kind == LinkDirect {
			i++
		}
		r.Links = append(r.Links, Link{})
		copy(r.Links[i+1:], r.Links[i:])
		r.Links[i] = l
		return
	}
	r.Links = append(r.Links, l)
}
