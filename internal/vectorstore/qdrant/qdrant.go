package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"docsearch/internal/domain"
	"docsearch/internal/vectorstore/vecmath"
)

const uploadBatch = 256

// Storage is a minimal REST client to Qdrant.
// Build drops and recreates the collection with Euclid distance; point ids
// are corpus positions.
type Storage struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	count      int
	built      bool
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) (*Storage, error) {
	if cfg.URL == "" {
		return nil, errors.New("qdrant url is required")
	}
	if cfg.Collection == "" {
		return nil, errors.New("qdrant collection is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

func (s *Storage) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", s.url, s.collection)
}

// Build recreates the collection and uploads vectors. It may be called only once.
func (s *Storage) Build(vectors [][]float32) error {
	if s.built {
		return vecmath.ErrAlreadyBuilt
	}
	dim, err := vecmath.Dimension(vectors)
	if err != nil {
		return err
	}
	if err := s.drop(); err != nil {
		return err
	}
	if len(vectors) > 0 {
		body := map[string]any{
			"vectors": map[string]any{
				"size":     dim,
				"distance": "Euclid",
			},
		}
		if err := s.do(http.MethodPut, s.collectionURL(), body, nil); err != nil {
			return err
		}
		for start := 0; start < len(vectors); start += uploadBatch {
			end := min(start+uploadBatch, len(vectors))
			points := make([]map[string]any, 0, end-start)
			for pos := start; pos < end; pos++ {
				points = append(points, map[string]any{
					"id":     pos,
					"vector": vectors[pos],
				})
			}
			url := s.collectionURL() + "/points?wait=true"
			if err := s.do(http.MethodPut, url, map[string]any{"points": points}, nil); err != nil {
				return err
			}
		}
	}
	s.dimension = dim
	s.count = len(vectors)
	s.built = true
	return nil
}

// Search returns the min(k, Len()) nearest positions with squared distances.
func (s *Storage) Search(vector []float32, topK int) ([]domain.Neighbor, error) {
	if topK <= 0 || s.count == 0 {
		return []domain.Neighbor{}, nil
	}
	if err := vecmath.CheckQuery(vector, s.dimension); err != nil {
		return nil, err
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": false,
	}
	var resp struct {
		Result []struct {
			ID    int     `json:"id"`
			Score float64 `json:"score"`
		} `json:"result"`
	}
	if err := s.do(http.MethodPost, s.collectionURL()+"/points/search", req, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Neighbor, 0, len(resp.Result))
	for _, r := range resp.Result {
		if r.ID < 0 || r.ID >= s.count {
			return nil, fmt.Errorf("qdrant returned unknown point id %d", r.ID)
		}
		out = append(out, domain.Neighbor{Position: r.ID, Distance: r.Score * r.Score})
	}
	vecmath.Sort(out)
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// Len returns the number of uploaded vectors.
func (s *Storage) Len() int { return s.count }

func (s *Storage) drop() error {
	req, err := http.NewRequest(http.MethodDelete, s.collectionURL(), nil)
	if err != nil {
		return err
	}
	s.authorize(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant DELETE %s: %w", s.collectionURL(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("qdrant DELETE %s failed: %s", s.collectionURL(), resp.Status)
	}
	return nil
}

func (s *Storage) authorize(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Storage) do(method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("qdrant %s %s failed: %s %s", method, url, resp.Status, bytes.TrimSpace(msg))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
