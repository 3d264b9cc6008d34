package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/acebot/backend/internal/domain"
	"github.com/acebot/backend/internal/infrastructure/sites"
)

// SystemPrompt is the persona handed to the completion collaborator for
// utterances the rule-based resolver does not handle itself.
const SystemPrompt = "You are AceBot, an intelligent e-commerce assistant. Your job is to assist users in finding products, " +
	"comparing prices, and providing the best deals available online from multiple e-commerce websites. " +
	"You should be friendly, smart, and responsive.\n\n" +
	"Rules:\n" +
	"- Greet the user only on the first response.\n" +
	"- Don't repeat greetings like 'Hi' or 'Hello'.\n" +
	"- If the user asks 'what are you' or 'who are you', say: 'I'm AceBot, your e-commerce assistant! 😊'\n" +
	"- If the user says 'I want to buy a [product]', ask for their preferred brand.\n" +
	"- If the product is a phone, ask: 'Which brand? Samsung, iPhone, Tecno, or another brand?'\n" +
	"- If a brand is mentioned, ask where they'd like to buy it: Jumia, Amazon, Konga, Slot, Kara, AjeboMarket, or Jiji - or if they want to compare across all.\n" +
	"- If the user says something like 'fetch it for me from [site]', populate the search bar with the product and trigger the fetch for that specific site."

var greetingSet = map[string]bool{
	"hi": true, "hello": true, "hey": true, "xup": true, "yo": true, "howdy": true,
}

var emotionalPhrases = []string{
	"i'm sick", "i feel sad", "i'm tired", "i'm depressed", "i'm stressed",
}

var gratitudePhrases = []string{
	"thank", "thanks", "appreciate it", "grateful", "thank you", "love it", "great", "nice one",
}

// fetchTrigger pairs a site with the phrases that request a scrape from it.
// Scanned in order, first match wins.
type fetchTrigger struct {
	site    string
	phrases []string
}

var fetchTriggers = []fetchTrigger{
	{"jumia", []string{"from jumia", "yes jumia", "get it from jumia", "fetch it from jumia", "search for it from jumia"}},
	{"amazon", []string{"from amazon", "yes amazon", "get it from amazon", "fetch it from amazon", "search for it from amazon"}},
	{"konga", []string{"from konga", "yes konga", "get it from konga", "fetch it from konga", "search for it from konga"}},
	{"slot", []string{"from slot", "yes slot", "get it from slot"}},
	{"kara", []string{"from kara", "yes kara", "get it from kara"}},
	{"ajebomarket", []string{"from ajebo", "from ajebomarket", "yes ajebo", "get it from ajebo"}},
	{"jiji", []string{"from jiji", "yes jiji", "get it from jiji"}},
}

// conversation is one session's state: the resolver-owned context plus the
// append-only utterance history used for backward anaphora replay.
type conversation struct {
	ctx     domain.ConversationContext
	history []string
}

// ConversationService is the dialogue state machine. It classifies each
// utterance in fixed priority order, maintains per-session product/brand
// memory, and resolves fetch triggers against the utterance history.
type ConversationService struct {
	completion domain.CompletionClient
	titler     cases.Caser

	mu       sync.Mutex
	sessions map[string]*conversation
}

// NewConversationService creates a conversation service with dependencies
func NewConversationService(completion domain.CompletionClient) *ConversationService {
	return &ConversationService{
		completion: completion,
		titler:     cases.Title(language.English),
		sessions:   make(map[string]*conversation),
	}
}

// EnsureSession returns the session id to use for a request, creating a new
// session when the given id is empty or unknown.
func (s *ConversationService) EnsureSession(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, ok := s.sessions[id]; ok {
			return id
		}
	}
	id = uuid.NewString()
	s.sessions[id] = &conversation{}
	return id
}

// Resolve classifies one utterance for a session and produces a reply.
// Priority order is fixed and first-match-wins: greeting, well-being,
// emotional, gratitude, identity, then context update + fetch trigger, then
// passthrough to the completion collaborator.
func (s *ConversationService) Resolve(ctx context.Context, sessionID, utterance string) (domain.Reply, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return domain.Reply{}, domain.ErrInvalidRequest
	}

	s.mu.Lock()
	conv, ok := s.sessions[sessionID]
	if !ok {
		conv = &conversation{}
		s.sessions[sessionID] = conv
	}
	conv.history = append(conv.history, utterance)
	s.mu.Unlock()

	reply, err := s.classify(ctx, conv, utterance)
	if err != nil {
		return domain.Reply{}, err
	}

	conv.ctx.FirstResponseSent = true
	return reply, nil
}

func (s *ConversationService) classify(ctx context.Context, conv *conversation, utterance string) (domain.Reply, error) {
	lower := strings.ToLower(utterance)

	if greetingSet[lower] {
		if conv.ctx.FirstResponseSent {
			return textReply("Hi once again, how can I help you?"), nil
		}
		return textReply("Hi! 😊 I'm AceBot, your e-commerce assistant! What product are you looking for today?"), nil
	}

	if strings.Contains(lower, "how are you") {
		return textReply("I'm doing great, thanks! 😊 How can I assist you?"), nil
	}

	if containsAny(lower, emotionalPhrases) {
		return textReply("I'm really sorry to hear that 💙. I'm here if you need help finding something or just want to chat."), nil
	}

	if containsAny(lower, gratitudePhrases) {
		return textReply("You're welcome! Let me know if you'd like to order any other products from Jumia or other websites 😊."), nil
	}

	if strings.Contains(lower, "who are you") || strings.Contains(lower, "what are you") {
		return textReply("I'm AceBot, your e-commerce assistant! 😊"), nil
	}

	s.updateContext(conv, utterance)

	if site := detectFetchTrigger(lower); site != "" {
		return s.resolveFetch(conv, site), nil
	}

	return s.passthrough(ctx, conv, utterance)
}

// updateContext applies product and brand extraction to the session memory.
func (s *ConversationService) updateContext(conv *conversation, utterance string) {
	if raw := ExtractProduct(utterance); raw != "" {
		conv.ctx.Product = StripBrandTokens(raw)

		// A remembered electronics brand must not leak into unrelated
		// apparel queries: "buy a leather bag" after "Samsung phone"
		// should not search for a Samsung bag. The containment check runs
		// against the raw phrase, before brand stripping.
		if conv.ctx.Brand != "" {
			brandInProduct := strings.Contains(strings.ToLower(raw), strings.ToLower(conv.ctx.Brand))
			if !brandInProduct && mentionsNonElectronics(raw) {
				conv.ctx.Brand = ""
			}
		}
	}

	if brand := ExtractBrand(utterance); brand != "" {
		conv.ctx.Brand = brand
	}
}

// resolveFetch turns a detected trigger into a fetch directive, replaying the
// utterance history backwards when the remembered product is vague. When no
// concrete product can be resolved it asks the user to restate it instead.
func (s *ConversationService) resolveFetch(conv *conversation, site string) domain.Reply {
	product := strings.TrimSpace(conv.ctx.Product)
	if isVagueProduct(product) {
		product = ""
		for i := len(conv.history) - 2; i >= 0; i-- {
			candidate := ExtractProduct(conv.history[i])
			if candidate != "" && !isVagueProduct(candidate) {
				product = StripBrandTokens(candidate)
				break
			}
		}
	}

	label := sites.Label(site)
	if product == "" {
		return textReply(fmt.Sprintf("I need to know what product you're referring to before fetching from %s 😊.", label))
	}

	titled := s.titler.String(product)
	directive := domain.FetchDirective{Site: site, Product: titled}
	return domain.Reply{
		Kind:      domain.ReplyFetch,
		Text:      fmt.Sprintf("Fetching %s from %s...\n%s", titled, label, directive.Marker()),
		Directive: &directive,
	}
}

// passthrough builds the context-annotated prompt and relays the completion
// collaborator's token stream verbatim.
func (s *ConversationService) passthrough(ctx context.Context, conv *conversation, utterance string) (domain.Reply, error) {
	interest := strings.TrimSpace(conv.ctx.Brand + " " + conv.ctx.Product)
	userPrompt := fmt.Sprintf(
		"User: %s\nContext: The user is interested in buying a %s.\nAssistant:",
		utterance, interest,
	)

	stream, err := s.completion.StreamCompletion(ctx, SystemPrompt, userPrompt)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%w: %v", domain.ErrCompletionFailure, err)
	}
	return domain.Reply{Kind: domain.ReplyStream, Stream: stream}, nil
}

// detectFetchTrigger returns the site a lower-cased utterance asks to fetch
// from, or "" when no trigger phrase is present.
func detectFetchTrigger(lower string) string {
	for _, trigger := range fetchTriggers {
		for _, phrase := range trigger.phrases {
			if strings.Contains(lower, phrase) {
				return trigger.site
			}
		}
	}
	return ""
}

// isVagueProduct reports whether a product phrase is one of the anaphora
// placeholders that cannot be searched for directly. Trigger utterances like
// "get it from jumia" extract as "it from <site>", so those shapes count too.
func isVagueProduct(product string) bool {
	if product == "" {
		return true
	}
	lower := strings.ToLower(product)
	switch lower {
	case "it", "this", "that":
		return true
	}
	return strings.HasPrefix(lower, "it from ") || strings.HasPrefix(lower, "from ")
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

func textReply(text string) domain.Reply {
	return domain.Reply{Kind: domain.ReplyText, Text: text}
}
