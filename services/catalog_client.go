// services/catalog_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deck-tracker/models"
	"deck-tracker/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogClient talks to the Pokémon TCG catalog API.
type CatalogClient struct {
	BaseURL     string
	APIKey      string
	Client      *http.Client
	Concurrency int
}

type catalogList[T any] struct {
	Data []T `json:"data"`
}

type catalogItem[T any] struct {
	Data T `json:"data"`
}

func NewCatalogClient(baseURL, apiKey string, timeout time.Duration, concurrency int) *CatalogClient {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CatalogClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		APIKey:      apiKey,
		Client:      utils.NewHTTPClient(timeout),
		Concurrency: concurrency,
	}
}

// ResolveCardImages returns the image URLs that could be resolved for a card
// list, in card list order.
func (c *CatalogClient) ResolveCardImages(ctx context.Context, cardList string) []string {
	return ImageURLs(c.ResolveCardImageSlots(ctx, cardList))
}

// ImageURLs keeps the non-empty image URLs of slots, in order.
func ImageURLs(slots []models.CardImage) []string {
	urls := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.ImageURL != "" {
			urls = append(urls, slot.ImageURL)
		}
	}
	return urls
}

// ResolveCardImageSlots returns one entry per parsed card line, in order,
// with ImageURL left empty where the lookup failed. Each distinct set code
// and each distinct card is requested once.
func (c *CatalogClient) ResolveCardImageSlots(ctx context.Context, cardList string) []models.CardImage {
	entries := ParseCardList(cardList)
	slots := make([]models.CardImage, len(entries))
	for i, e := range entries {
		slots[i].CardEntry = e
	}
	if len(entries) == 0 {
		return slots
	}

	// set code -> set id
	var codes []string
	seenCodes := make(map[string]bool)
	for _, e := range entries {
		if !seenCodes[e.SetCode] {
			seenCodes[e.SetCode] = true
			codes = append(codes, e.SetCode)
		}
	}
	setIDs := make([]string, len(codes))
	c.fanOut(len(codes), func(i int) {
		id, err := c.lookupSetID(ctx, codes[i])
		if err != nil {
			zap.S().Warnf("[CATALOG] ⚠️ set lookup for %q failed: %v", codes[i], err)
			return
		}
		if id == "" {
			zap.S().Debugf("[CATALOG] no set matches code %q", codes[i])
		}
		setIDs[i] = id
	})
	setByCode := make(map[string]string, len(codes))
	for i, code := range codes {
		setByCode[code] = setIDs[i]
	}

	// set id + number -> image, shared by every slot holding that card
	var cardIDs []string
	slotsByCard := make(map[string][]int)
	for i, e := range entries {
		setID := setByCode[e.SetCode]
		if setID == "" {
			continue
		}
		cardID := setID + "-" + e.Number
		if _, ok := slotsByCard[cardID]; !ok {
			cardIDs = append(cardIDs, cardID)
		}
		slotsByCard[cardID] = append(slotsByCard[cardID], i)
	}
	images := make([]string, len(cardIDs))
	c.fanOut(len(cardIDs), func(i int) {
		img, err := c.lookupCardImage(ctx, cardIDs[i])
		if err != nil {
			zap.S().Warnf("[CATALOG] ⚠️ card lookup for %s failed: %v", cardIDs[i], err)
			return
		}
		images[i] = img
	})
	for i, cardID := range cardIDs {
		for _, slot := range slotsByCard[cardID] {
			slots[slot].ImageURL = images[i]
		}
	}
	return slots
}

// SearchCards returns up to ten cards whose name starts with prefix.
func (c *CatalogClient) SearchCards(ctx context.Context, prefix string) []models.Card {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []models.Card{}
	}
	var out catalogList[models.Card]
	q := url.Values{"q": {"name:" + prefix + "*"}, "pageSize": {"10"}}
	if err := c.getJSON(ctx, "/cards", q, &out); err != nil {
		zap.S().Warnf("[CATALOG] ⚠️ card search for %q failed: %v", prefix, err)
		return []models.Card{}
	}
	if out.Data == nil {
		return []models.Card{}
	}
	return out.Data
}

// GetCardByID returns the card or nil when it cannot be fetched.
func (c *CatalogClient) GetCardByID(ctx context.Context, id string) *models.Card {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	var out catalogItem[models.Card]
	if err := c.getJSON(ctx, "/cards/"+url.PathEscape(id), nil, &out); err != nil {
		zap.S().Warnf("[CATALOG] ⚠️ card %s lookup failed: %v", id, err)
		return nil
	}
	if out.Data.ID == "" {
		return nil
	}
	return &out.Data
}

// GetCardImageByName returns the small image of the first card with exactly
// this name, or "".
func (c *CatalogClient) GetCardImageByName(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var out catalogList[models.Card]
	q := url.Values{"q": {`name:"` + name + `"`}, "pageSize": {"1"}}
	if err := c.getJSON(ctx, "/cards", q, &out); err != nil {
		zap.S().Warnf("[CATALOG] ⚠️ image lookup for %q failed: %v", name, err)
		return ""
	}
	if len(out.Data) == 0 {
		return ""
	}
	return out.Data[0].Images.Small
}

func (c *CatalogClient) lookupSetID(ctx context.Context, code string) (string, error) {
	var out catalogList[models.CardSet]
	if err := c.getJSON(ctx, "/sets", url.Values{"q": {"ptcgoCode:" + code}}, &out); err != nil {
		return "", err
	}
	if len(out.Data) == 0 {
		return "", nil
	}
	return out.Data[0].ID, nil
}

func (c *CatalogClient) lookupCardImage(ctx context.Context, cardID string) (string, error) {
	var out catalogList[models.Card]
	if err := c.getJSON(ctx, "/cards", url.Values{"q": {"id:" + cardID}}, &out); err != nil {
		return "", err
	}
	if len(out.Data) == 0 {
		return "", nil
	}
	return out.Data[0].Images.Small, nil
}

// fanOut runs task for 0..n-1 with at most c.Concurrency in flight. Tasks
// report their own failures, so one failing never stops the others.
func (c *CatalogClient) fanOut(n int, task func(i int)) {
	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			task(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (c *CatalogClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
