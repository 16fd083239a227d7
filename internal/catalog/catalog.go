package catalog

import (
	"time"

	"app/internal/model"
)

const (
	// CreditCostPerImage is the fixed per-generation cost.
	CreditCostPerImage = 5
	// InitialFreeCredits is granted at first-login provisioning.
	InitialFreeCredits = 25
	// AdminInitialCredits is granted to the configured admin account.
	AdminInitialCredits = 9999
)

// Plans is the immutable credit-plan catalog.
var Plans = []model.CreditPlan{
	{
		ID:       "starter",
		Name:     "Starter",
		Credits:  50,
		Price:    49,
		Features: []string{"50 Credits", "Remove Watermark", "Standard Speed", "Email Support"},
	},
	{
		ID:       "growth",
		Name:     "Growth",
		Credits:  150,
		Price:    129,
		Features: []string{"150 Credits", "Remove Watermark", "Fast Generation", "Priority Support"},
		Popular:  true,
	},
	{
		ID:       "pro",
		Name:     "Pro",
		Credits:  400,
		Price:    299,
		Features: []string{"400 Credits", "Remove Watermark", "Max Speed", "Commercial License"},
	},
}

// PlanByID returns the plan with the given id, or nil.
func PlanByID(id string) *model.CreditPlan {
	for i := range Plans {
		if Plans[i].ID == id {
			return &Plans[i]
		}
	}
	return nil
}

// ImageStyle is a selectable art style.
type ImageStyle struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var ImageStyles = []ImageStyle{
	{ID: "none", Label: "No Style"},
	{ID: "realistic", Label: "Realistic"},
	{ID: "cinematic", Label: "Cinematic"},
	{ID: "anime", Label: "Anime"},
	{ID: "illustration", Label: "Illustration"},
	{ID: "cyberpunk", Label: "Cyberpunk"},
	{ID: "oil_painting", Label: "Oil Painting"},
	{ID: "3d_render", Label: "3D Render"},
}

// StyleByID returns the style with the given id, or nil.
func StyleByID(id string) *ImageStyle {
	for i := range ImageStyles {
		if ImageStyles[i].ID == id {
			return &ImageStyles[i]
		}
	}
	return nil
}

// PromptPreset appends a use-case suffix to a prompt.
type PromptPreset struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Suffix string `json:"suffix"`
}

var PromptPresets = []PromptPreset{
	{ID: "social", Label: "Instagram", Suffix: ", aesthetic, trendy, square ratio, high detail, social media style"},
	{ID: "youtube", Label: "Thumbnail", Suffix: ", high contrast, catchy, vibrant colors, 4k, detailed, face focus"},
	{ID: "wallpaper", Label: "Wallpaper", Suffix: ", wide angle, 8k resolution, atmospheric, cinematic lighting, masterpiece"},
	{ID: "logo", Label: "Logo", Suffix: ", vector art, minimal, simple, flat design, icon, white background"},
}

// CuratedIDPrefix marks feed entries that exist only in code. Likes on
// these entries are never persisted.
const CuratedIDPrefix = "static-"

var curatedExamples = []model.GeneratedImage{
	{
		ID:       "static-1",
		UserID:   "system",
		Prompt:   "A futuristic cyberpunk samurai standing in neon rain, glowing katana, cinematic lighting, 8k resolution, detailed armor",
		ImageURL: "https://images.unsplash.com/photo-1614726365723-49cfae50401b?auto=format&fit=crop&w=800&q=80",
		IsPublic: true,
		Likes:    124,
	},
	{
		ID:       "static-2",
		UserID:   "system",
		Prompt:   "Serene landscape of a floating island in the sky, waterfalls, lush greenery, fantasy art style, soft sunlight",
		ImageURL: "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?auto=format&fit=crop&w=800&q=80",
		IsPublic: true,
		Likes:    89,
	},
	{
		ID:       "static-3",
		UserID:   "system",
		Prompt:   "Professional product photography of a luxury perfume bottle on black marble, gold accents, dramatic lighting",
		ImageURL: "https://images.unsplash.com/photo-1615397349754-cfa2066a298e?auto=format&fit=crop&w=800&q=80",
		IsPublic: true,
		Likes:    56,
	},
	{
		ID:       "static-4",
		UserID:   "system",
		Prompt:   "Portrait of an astronaut reflecting a galaxy in the helmet visor, highly detailed, realistic texture, 4k",
		ImageURL: "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?auto=format&fit=crop&w=800&q=80",
		IsPublic: true,
		Likes:    210,
	},
	{
		ID:       "static-5",
		UserID:   "system",
		Prompt:   "Abstract oil painting of a city skyline at sunset, vibrant colors, thick brush strokes, impressionist style",
		ImageURL: "https://images.unsplash.com/photo-1541963463532-d68292c34b19?auto=format&fit=crop&w=800&q=80",
		IsPublic: true,
		Likes:    78,
	},
	{
		ID:       "static-6",
		UserID:   "system",
		Prompt:   "Minimalist logo design for a tech company, geometric fox shape, orange and blue gradient, vector art style",
		ImageURL: "https://images.unsplash.com/photo-1626785774573-4b799314346d?auto=format&fit=crop&w=800&q=80",
		IsPublic: true,
		Likes:    45,
	},
}

// CuratedExamples returns a fresh copy of the static feed entries so
// callers can mutate display state without touching the catalog.
func CuratedExamples() []model.GeneratedImage {
	out := make([]model.GeneratedImage, len(curatedExamples))
	copy(out, curatedExamples)
	now := time.Now()
	for i := range out {
		out[i].CreatedAt = now
	}
	return out
}

// IsCurated reports whether an image id belongs to the curated set.
func IsCurated(id string) bool {
	return len(id) >= len(CuratedIDPrefix) && id[:len(CuratedIDPrefix)] == CuratedIDPrefix
}
