// Package quiz holds the style quiz questions and maps answers to a style
// profile.
package quiz

import (
	"fmt"
	"slices"

	"github.com/erazemk/garderoba/internal/model"
)

// Option is one selectable answer.
type Option struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

// Step is one quiz question.
type Step struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []Option `json:"options"`
	MultiSelect bool     `json:"multiSelect"`
}

// Profile is the result of a completed quiz.
type Profile struct {
	Style           string   `json:"style"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// Answers maps a step id to the selected option ids. Single-select steps
// carry exactly one id.
type Answers map[string]model.StringSet

const imageBase = "https://images.pexels.com/photos/"

var steps = []Step{
	{
		ID:       "colors",
		Question: "Which colors do you prefer to wear?",
		Options: []Option{
			{"neutrals", "Neutrals (Black, White, Gray, Beige)", imageBase + "5384423/pexels-photo-5384423.jpeg"},
			{"earth-tones", "Earth Tones (Brown, Olive, Rust)", imageBase + "6311387/pexels-photo-6311387.jpeg"},
			{"pastels", "Pastels (Light Blue, Pink, Lavender)", imageBase + "5709661/pexels-photo-5709661.jpeg"},
			{"bold", "Bold Colors (Red, Blue, Yellow)", imageBase + "5709665/pexels-photo-5709665.jpeg"},
		},
		MultiSelect: true,
	},
	{
		ID:       "style",
		Question: "Which style resonates with you the most?",
		Options: []Option{
			{"classic", "Classic & Timeless", imageBase + "1043474/pexels-photo-1043474.jpeg"},
			{"casual", "Casual & Comfortable", imageBase + "1183266/pexels-photo-1183266.jpeg"},
			{"trendy", "Trendy & Fashion-Forward", imageBase + "2703202/pexels-photo-2703202.jpeg"},
			{"minimalist", "Minimalist & Clean", imageBase + "5709661/pexels-photo-5709661.jpeg"},
		},
	},
	{
		ID:       "occasions",
		Question: "What occasions do you dress for most often?",
		Options: []Option{
			{"work", "Work/Office", imageBase + "937481/pexels-photo-937481.jpeg"},
			{"casual", "Casual Outings", imageBase + "1036623/pexels-photo-1036623.jpeg"},
			{"formal", "Formal Events", imageBase + "1300550/pexels-photo-1300550.jpeg"},
			{"active", "Active/Fitness", imageBase + "4498482/pexels-photo-4498482.jpeg"},
		},
		MultiSelect: true,
	},
	{
		ID:       "priorities",
		Question: "What matters most to you when choosing clothes?",
		Options: []Option{
			{"comfort", "Comfort", imageBase + "6311166/pexels-photo-6311166.jpeg"},
			{"style", "Style & Appearance", imageBase + "1926769/pexels-photo-1926769.jpeg"},
			{"versatility", "Versatility", imageBase + "5709661/pexels-photo-5709661.jpeg"},
			{"quality", "Quality & Durability", imageBase + "6311601/pexels-photo-6311601.jpeg"},
		},
	},
}

var profiles = map[string]Profile{
	"classic": {
		Title:       "Classic Elegance",
		Description: "You appreciate timeless pieces that never go out of style. Your wardrobe likely consists of well-tailored items in neutral colors that can be mixed and matched effortlessly.",
		Recommendations: []string{
			"Invest in quality basics like white button-downs and well-fitted jeans",
			"Focus on tailoring and fit rather than trends",
			"Add interest with accessories rather than bold patterns",
			"Consider a capsule wardrobe approach",
		},
	},
	"casual": {
		Title:       "Casual Comfort",
		Description: "Comfort is key for you, but you still want to look put-together. Your style is relaxed and approachable, perfect for everyday life.",
		Recommendations: []string{
			"Elevated basics like quality t-shirts and well-fitted jeans",
			"Comfortable yet stylish footwear",
			"Layering pieces for versatility",
			"Casual accessories to complete your look",
		},
	},
	"trendy": {
		Title:       "Fashion Forward",
		Description: "You love staying on top of the latest trends and expressing yourself through fashion. Your wardrobe is likely colorful and diverse.",
		Recommendations: []string{
			"Follow fashion influencers for inspiration",
			"Invest in statement pieces each season",
			"Mix trends with basics for balance",
			"Experiment with bold colors and patterns",
		},
	},
	"minimalist": {
		Title:       "Minimalist Chic",
		Description: "You value simplicity and clean lines. Your wardrobe likely consists of high-quality pieces in a limited color palette that work perfectly together.",
		Recommendations: []string{
			"Focus on quality over quantity",
			"Stick to a cohesive color palette",
			"Invest in versatile pieces that can be styled multiple ways",
			"Pay attention to subtle details and textures",
		},
	},
}

var eclectic = Profile{
	Style:       "eclectic",
	Title:       "Eclectic Mix",
	Description: "You have a diverse style that draws from multiple influences. You're not afraid to experiment and express yourself through your clothing choices.",
	Recommendations: []string{
		"Continue to experiment with different styles",
		"Focus on pieces that make you feel confident",
		"Consider the versatility of new additions",
		"Don't be afraid to mix unexpected elements",
	},
}

// Steps returns the quiz questions in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Options = slices.Clone(s.Options)
		out[i] = s
	}
	return out
}

// Validate checks that every step is answered with known options and that
// single-select steps have exactly one answer.
func Validate(a Answers) error {
	for id := range a {
		if !slices.ContainsFunc(steps, func(s Step) bool { return s.ID == id }) {
			return fmt.Errorf("%w: unknown quiz step %q", model.ErrInvalidArgument, id)
		}
	}

	for _, step := range steps {
		picked := a[step.ID]
		if len(picked) == 0 {
			return fmt.Errorf("%w: step %q not answered", model.ErrInvalidArgument, step.ID)
		}
		if !step.MultiSelect && len(picked) > 1 {
			return fmt.Errorf("%w: step %q takes a single answer", model.ErrInvalidArgument, step.ID)
		}
		for _, opt := range picked {
			if !slices.ContainsFunc(step.Options, func(o Option) bool { return o.ID == opt }) {
				return fmt.Errorf("%w: unknown option %q for step %q", model.ErrInvalidArgument, opt, step.ID)
			}
		}
	}
	return nil
}

// Evaluate validates the answers and returns the matching profile. Any style
// without a dedicated profile falls back to the eclectic one.
func Evaluate(a Answers) (Profile, error) {
	if err := Validate(a); err != nil {
		return Profile{}, err
	}
	return ProfileFor(a["style"][0]), nil
}

// ProfileFor returns the profile for a style answer.
func ProfileFor(style string) Profile {
	p, ok := profiles[style]
	if !ok {
		return cloneProfile(eclectic)
	}
	p.Style = style
	return cloneProfile(p)
}

func cloneProfile(p Profile) Profile {
	p.Recommendations = slices.Clone(p.Recommendations)
	return p
}
