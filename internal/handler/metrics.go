package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_narrator_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_narrator_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	charactersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_narrator_characters_created_total",
		Help: "Total number of created characters.",
	})

	scenariosCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_narrator_scenarios_created_total",
		Help: "Total number of created scenarios.",
	})

	storiesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_narrator_stories_generated_total",
			Help: "Total number of story generation requests by status.",
		},
		[]string{"status"},
	)
)
