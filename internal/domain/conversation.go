package domain

import "strings"

// ConversationContext is the per-session memory the resolver maintains.
// Mutated only by the conversation resolver; one instance per conversation.
type ConversationContext struct {
	Product           string // last resolved product phrase
	Brand             string // last resolved brand
	FirstResponseSent bool   // flips once after the first reply, never resets
}

// FetchDirective is a resolved (site, product) pair that should trigger a scrape.
type FetchDirective struct {
	Site    string
	Product string // title-cased product name
}

// Marker returns the machine-readable wire marker the presentation layer parses
// to auto-populate and trigger a site search. The format is a wire contract.
func (d FetchDirective) Marker() string {
	return "__FETCH_FROM_" + strings.ToUpper(d.Site) + "__" + d.Product
}

// ReplyKind classifies what a resolved utterance produced.
type ReplyKind int

const (
	// ReplyText is a short canned textual reply.
	ReplyText ReplyKind = iota
	// ReplyFetch carries a fetch directive alongside its confirmation text.
	ReplyFetch
	// ReplyStream relays tokens from the completion collaborator verbatim.
	ReplyStream
)

// Reply is the resolver's answer to one utterance.
type Reply struct {
	Kind      ReplyKind
	Text      string
	Directive *FetchDirective
	Stream    <-chan string
}
