package service

import (
	"fmt"
	"html"
	"log"
	"os"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"sereno.app/mindgarden/internal/entity"
)

type SearchService interface {
	IndexResource(resource *entity.Resource) error
	DeleteResource(id string) error
	GenerateSearchToken() (string, error)
}

type searchService struct {
	client        meilisearch.ServiceManager
	masterKey     string
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	masterKey := os.Getenv("MEILI_MASTER_KEY")
	if masterKey == "" {
		log.Println("WARNING: MEILI_MASTER_KEY is not set.")
	}

	s := &searchService{
		client:    client,
		masterKey: masterKey,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *searchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "TenantTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        "TenantTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{"resources"},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"category"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("resources").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update resources filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at"}
	_, err = s.client.Index("resources").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update resources sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliResourceDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Tags      string `json:"tags"`
	CreatedAt int64  `json:"created_at"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexResource(resource *entity.Resource) error {
	doc := meiliResourceDoc{
		ID:        resource.ID.String(),
		Title:     resource.Title,
		Summary:   s.cleanContentForIndex(resource.Summary),
		Category:  resource.Category,
		Tags:      resource.Tags,
		CreatedAt: resource.CreatedAt.Unix(),
	}

	task, err := s.client.Index("resources").AddDocuments([]meiliResourceDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed resource %s, task id: %d", resource.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteResource(id string) error {
	_, err := s.client.Index("resources").DeleteDocument(id)
	return err
}

// GenerateSearchToken returns a short-lived tenant token so the client
// can query the resource index directly.
func (s *searchService) GenerateSearchToken() (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		"resources": map[string]any{},
	}

	token, err := s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func strPtr(s string) *string {
	return &s
}
