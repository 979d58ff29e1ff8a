package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hostbuddy-backend/internal/square"
)

type OutcomeKind string

const (
	OutcomeDirectMatch     OutcomeKind = "direct_match"
	OutcomeClassifiedMatch OutcomeKind = "classified_match"
	OutcomeCatalogList     OutcomeKind = "catalog_list"
	OutcomeNotFound        OutcomeKind = "not_found"
	OutcomeNoClassifier    OutcomeKind = "no_classifier"
	OutcomeClassifierError OutcomeKind = "classifier_error"
)

// Outcome is the result of resolving one user message. It lives only for the
// duration of a single resolution call.
type Outcome struct {
	Kind  OutcomeKind
	Name  string
	Price float64
	// Items is populated for catalog_list outcomes (sorted names).
	Items []string
	// Err holds the underlying classifier failure for logging. It is never
	// rendered into the reply.
	Err error
}

// Classifier maps a free-text message to a known item name, or the not-found
// sentinel when nothing fits.
type Classifier interface {
	Classify(ctx context.Context, message string, knownNames []string) (string, error)
}

type Resolver struct {
	catalog    square.Catalog
	classifier Classifier
}

// NewResolver builds a resolver over an immutable catalog. classifier may be
// nil when no completion credentials are configured.
func NewResolver(catalog square.Catalog, classifier Classifier) *Resolver {
	return &Resolver{catalog: catalog, classifier: classifier}
}

// Resolve answers one message: direct substring match first, then a catalog
// listing for menu-style questions, then the classifier fallback.
func (r *Resolver) Resolve(ctx context.Context, message string) Outcome {
	text := strings.ToLower(message)

	// Longest name first, so "chicken taco" wins over "taco" when both occur.
	for _, name := range r.scanOrder() {
		if strings.Contains(text, name) {
			return Outcome{Kind: OutcomeDirectMatch, Name: name, Price: r.catalog[name]}
		}
	}

	if len(r.catalog) > 0 && IsListRequest(text) {
		return Outcome{Kind: OutcomeCatalogList, Items: r.sortedNames()}
	}

	if r.classifier == nil {
		return Outcome{Kind: OutcomeNoClassifier}
	}

	answer, err := r.classifier.Classify(ctx, message, r.sortedNames())
	if err != nil {
		return Outcome{Kind: OutcomeClassifierError, Err: err}
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if price, ok := r.catalog[answer]; ok {
		return Outcome{Kind: OutcomeClassifiedMatch, Name: answer, Price: price}
	}
	// NotFoundSentinel and anything else the model invents both land here;
	// unknown names are not an error.
	return Outcome{Kind: OutcomeNotFound}
}

func (r *Resolver) scanOrder() []string {
	names := r.sortedNames()
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	return names
}

func (r *Resolver) sortedNames() []string {
	names := make([]string, 0, len(r.catalog))
	for name := range r.catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reply renders the outcome for display. Upstream error detail never appears
// in the rendered text.
func (o Outcome) Reply() string {
	switch o.Kind {
	case OutcomeDirectMatch, OutcomeClassifiedMatch:
		return fmt.Sprintf("The %s costs $%.2f.", o.Name, o.Price)
	case OutcomeCatalogList:
		return fmt.Sprintf("There are %d items: %s.", len(o.Items), strings.Join(o.Items, ", "))
	case OutcomeNoClassifier:
		return "OpenAI is not configured, so I can only answer questions that name a catalog item directly."
	case OutcomeClassifierError:
		return "Sorry, I cannot answer that right now. Please try another question."
	default:
		return "Sorry, I couldn't find that item in the catalog."
	}
}
