// Package content holds the static landing page content table: stories, feed
// posts, people and the site metadata. It is loaded once and never mutated.
package content

import "strings"

// Tour and Call are placeholders in the content document that resolve to the
// configured booking widget addresses.
const (
	TourPlaceholder = "{{tour}}"
	CallPlaceholder = "{{call}}"
)

// CTA is a labelled link.
type CTA struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// Slide is one frame of a story.
type Slide struct {
	Image   string `yaml:"image" json:"image"`
	Caption string `yaml:"caption" json:"caption"`
	CTA     *CTA   `yaml:"cta,omitempty" json:"cta,omitempty"`
}

// Story is an ordered, non-empty sequence of slides.
type Story struct {
	ID         string  `yaml:"id" json:"id"`
	Title      string  `yaml:"title" json:"title"`
	CoverImage string  `yaml:"cover_image" json:"cover_image"`
	Slides     []Slide `yaml:"slides" json:"slides"`
}

// Person appears in the "People You May Know" block.
type Person struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Role  string `yaml:"role" json:"role"`
	Image string `yaml:"image" json:"image"`
	Badge string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// ButtonVariant selects the primary button style.
type ButtonVariant string

const (
	VariantGradient ButtonVariant = "gradient"
	VariantBlack    ButtonVariant = "black"
	VariantGreen    ButtonVariant = "green"
	VariantWhite    ButtonVariant = "white"
)

// PrimaryCTA is the main button under a post.
type PrimaryCTA struct {
	Label   string        `yaml:"label" json:"label"`
	Href    string        `yaml:"href" json:"href"`
	Variant ButtonVariant `yaml:"variant" json:"variant"`
	Tour    bool          `yaml:"tour,omitempty" json:"tour,omitempty"`
}

// Comment is the pinned first comment under a post.
type Comment struct {
	Name    string `yaml:"name" json:"name"`
	Text    string `yaml:"text" json:"text"`
	CTAText string `yaml:"cta_text,omitempty" json:"cta_text,omitempty"`
	CTAHref string `yaml:"cta_href,omitempty" json:"cta_href,omitempty"`
	Tour    bool   `yaml:"tour,omitempty" json:"tour,omitempty"`
}

// Urgency is a short coloured line under a post body.
type Urgency struct {
	Text string `yaml:"text" json:"text"`
	Tone string `yaml:"tone" json:"tone"`
}

// Post is one feed card. Kind "calculator" renders the revenue calculator as its body.
type Post struct {
	ID           string     `yaml:"id" json:"id"`
	Kind         string     `yaml:"kind,omitempty" json:"kind,omitempty"`
	Title        string     `yaml:"title" json:"title"`
	Image        string     `yaml:"image,omitempty" json:"image,omitempty"`
	VideoSrc     string     `yaml:"video_src,omitempty" json:"video_src,omitempty"`
	VideoPoster  string     `yaml:"video_poster,omitempty" json:"video_poster,omitempty"`
	Body         []string   `yaml:"body" json:"body"`
	Details      []Urgency  `yaml:"details,omitempty" json:"details,omitempty"`
	MicroUrgency *Urgency   `yaml:"micro_urgency,omitempty" json:"micro_urgency,omitempty"`
	PrimaryCTA   PrimaryCTA `yaml:"primary_cta" json:"primary_cta"`
	FirstComment Comment    `yaml:"first_comment" json:"first_comment"`
}

// KindCalculator marks the post that hosts the revenue calculator.
const KindCalculator = "calculator"

// IsCalculator reports whether the post body is the revenue calculator.
func (p Post) IsCalculator() bool {
	return strings.EqualFold(p.Kind, KindCalculator)
}

// Stat is a trust figure such as "376+ Trusted by Pros".
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	Wide  bool   `yaml:"wide,omitempty" json:"wide,omitempty"`
}

// Image is a social preview image.
type Image struct {
	URL    string `yaml:"url" json:"url"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Alt    string `yaml:"alt" json:"alt"`
}

// Site is the document-level metadata rendered into <head>.
type Site struct {
	Name               string   `yaml:"name"`
	Title              string   `yaml:"title"`
	Description        string   `yaml:"description"`
	Keywords           []string `yaml:"keywords"`
	OGTitle            string   `yaml:"og_title"`
	OGDescription      string   `yaml:"og_description"`
	TwitterTitle       string   `yaml:"twitter_title"`
	TwitterDescription string   `yaml:"twitter_description"`
	Locale             string   `yaml:"locale"`
	SocialImage        Image    `yaml:"social_image"`
	LogoURL            string   `yaml:"logo_url"`
}

// Chat is the scripted two-bubble conversation.
type Chat struct {
	Sender       string `yaml:"sender"`
	FirstBubble  string `yaml:"first_bubble"`
	SecondBubble string `yaml:"second_bubble"`
	CTALabel     string `yaml:"cta_label"`
}

// Final is the closing call-to-action block.
type Final struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	BoothLabel string `yaml:"booth_label"`
	OwnerLabel string `yaml:"owner_label"`
	CTALabel   string `yaml:"cta_label"`
	Tip        string `yaml:"tip"`
}

// Table is the whole content document.
type Table struct {
	Site         Site     `yaml:"site"`
	LiveActivity []string `yaml:"live_activity"`
	Stats        []Stat   `yaml:"stats"`
	Stories      []Story  `yaml:"stories"`
	People       []Person `yaml:"people"`
	PeopleNote   string   `yaml:"people_note"`
	Posts        []Post   `yaml:"posts"`
	Chat         Chat     `yaml:"chat"`
	Final        Final    `yaml:"final"`
	SaveToast    string   `yaml:"save_toast"`
}

// Story returns the story with the given id.
func (t *Table) Story(id string) (Story, bool) {
	for _, s := range t.Stories {
		if s.ID == id {
			return s, true
		}
	}
	return Story{}, false
}

// Post returns the post with the given id.
func (t *Table) Post(id string) (Post, bool) {
	for _, p := range t.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// LiveActivityMessage returns the message shown in the live activity bar. The
// bar is static: it always shows the first entry.
func (t *Table) LiveActivityMessage() string {
	if len(t.LiveActivity) == 0 {
		return ""
	}
	return t.LiveActivity[0]
}

// HasPost reports whether a post with the given id exists.
func (t *Table) HasPost(id string) bool {
	_, ok := t.Post(id)
	return ok
}
