// Package labeldetect habla con un servicio externo de detección de
// etiquetas (estilo Rekognition) para la puerta de especie en uploads.
package labeldetect

import (
	"context"
	"fmt"
	"strings"

	"pupper-backend/internal/platform/httpclient"
	"pupper-backend/internal/ports/classify"
)

// DefaultMinConfidence es el umbral de score bajo el cual una etiqueta
// se descarta.
const DefaultMinConfidence = 70.0

// labradorKeywords: etiquetas que contamos como "es un labrador". Los
// detectores genéricos rara vez devuelven la raza exacta, así que la
// lista es deliberadamente generosa.
var labradorKeywords = []string{
	"labrador retriever",
	"labrador",
	"lab",
	"golden retriever",
	"retriever",
}

type Classifier struct {
	client        *httpclient.Client
	minConfidence float64
}

func New(client *httpclient.Client, minConfidence float64) *Classifier {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Classifier{client: client, minConfidence: minConfidence}
}

type detectLabelsRequest struct {
	ObjectKey     string  `json:"object_key"`
	MaxLabels     int     `json:"max_labels"`
	MinConfidence float64 `json:"min_confidence"`
}

type detectLabelsResponse struct {
	Labels []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"labels"`
}

// Classify pide las etiquetas de la imagen y deriva el veredicto. Una
// etiqueta "dog"/"canine"/"puppy" sobre el umbral marca IsDog; una de
// la lista de labrador marca IsLabrador (y de paso IsDog).
func (c *Classifier) Classify(ctx context.Context, key string) (classify.Result, error) {
	var resp detectLabelsResponse
	err := c.client.DoJSON(ctx, "POST", "/detect-labels", nil, detectLabelsRequest{
		ObjectKey:     key,
		MaxLabels:     10,
		MinConfidence: c.minConfidence,
	}, &resp)
	if err != nil {
		return classify.Result{}, fmt.Errorf("detect labels: %w", err)
	}

	var result classify.Result
	for _, l := range resp.Labels {
		result.Labels = append(result.Labels, classify.Label{Name: l.Name, Confidence: l.Confidence})
		if l.Confidence < c.minConfidence {
			continue
		}

		name := strings.ToLower(l.Name)
		if name == "dog" || name == "canine" || name == "puppy" {
			result.IsDog = true
		}
		for _, kw := range labradorKeywords {
			if name == kw {
				result.IsDog = true
				result.IsLabrador = true
				if l.Confidence > result.Confidence {
					result.Confidence = l.Confidence
				}
			}
		}
	}
	return result, nil
}
