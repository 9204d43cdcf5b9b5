// Package content holds the static tutorial catalog and quiz question sets.
package content

import "github.com/aihubacademy/backend/services/portal-client/internal/quiz"

// Tutorial is one entry in the learning catalog
type Tutorial struct {
	ID          int
	Title       string
	Description string
}

// tutorials is the ordered catalog shown to learners
var tutorials = []Tutorial{
	{
		ID:          1,
		Title:       "Getting Started with the AI Platform",
		Description: "Set up your account hierarchy, entitlements and a development subaccount.",
	},
	{
		ID:          2,
		Title:       "Training Your First Model",
		Description: "Package a training workload, run it on managed compute and track metrics.",
	},
	{
		ID:          3,
		Title:       "Serving Models Behind an API",
		Description: "Deploy a trained model as a versioned inference endpoint with authentication.",
	},
	{
		ID:          4,
		Title:       "Grounding LLMs with Your Data",
		Description: "Build a retrieval pipeline that feeds business documents into prompts.",
	},
	{
		ID:          5,
		Title:       "Monitoring and Scaling AI Workloads",
		Description: "Watch drift, latency and cost; scale serving replicas automatically.",
	},
	{
		ID:          6,
		Title:       "Designing an End-to-End AI Architecture",
		Description: "Connect data, training, serving and applications into one architecture.",
	},
}

// quizzes maps tutorial IDs to their ordered question sets
var quizzes = map[int][]quiz.Question{
	1: {
		{
			ID:            1,
			Text:          "What does a subaccount represent on the platform?",
			Options:       []string{"A single running application", "An isolated environment within your global account", "A database schema", "A user's personal workspace"},
			CorrectAnswer: 1,
			Explanation:   "A subaccount is an isolated environment under the global account where services are entitled and applications are deployed.",
		},
		{
			ID:            2,
			Text:          "What must be assigned to a subaccount before a service can be used in it?",
			Options:       []string{"A billing alert", "A custom domain", "An entitlement for that service", "An administrator role collection"},
			CorrectAnswer: 2,
			Explanation:   "Entitlements grant a subaccount the right to consume a service plan; without one, the service cannot be instantiated.",
		},
		{
			ID:            3,
			Text:          "Which environment is recommended for experimenting without affecting production?",
			Options:       []string{"The production subaccount", "A dedicated development subaccount", "The global account directly", "A colleague's subaccount"},
			CorrectAnswer: 1,
			Explanation:   "Keeping a separate development subaccount isolates experiments from production entitlements and quotas.",
		},
	},
	2: {
		{
			ID:            1,
			Text:          "How is a training workload delivered to the managed compute service?",
			Options:       []string{"As a container image referenced by a workflow template", "As a zip file emailed to support", "As raw source pasted into the console", "As a spreadsheet of hyperparameters"},
			CorrectAnswer: 0,
			Explanation:   "Training code is packaged into a container image; a workflow template tells the platform how to run it.",
		},
		{
			ID:            2,
			Text:          "Where should training datasets live so workloads can read them?",
			Options:       []string{"Inside the container image", "In an object store the workload is connected to", "On the developer's laptop", "In the platform's audit log"},
			CorrectAnswer: 1,
			Explanation:   "Datasets are kept in object storage and mounted or streamed into the workload, keeping images small and data versioned.",
		},
		{
			ID:            3,
			Text:          "Why are metrics logged during a training run?",
			Options:       []string{"To increase the run's priority", "To compare runs and pick the best model", "To reserve more GPU quota", "To notify the billing system"},
			CorrectAnswer: 1,
			Explanation:   "Logged metrics make runs comparable so the best performing model version can be promoted to serving.",
		},
	},
	3: {
		{
			ID:            1,
			Text:          "What is a deployment in the serving context?",
			Options:       []string{"A copy of the training dataset", "A running, versioned inference endpoint for a model", "A dashboard widget", "A scheduled batch job"},
			CorrectAnswer: 1,
			Explanation:   "A deployment runs a specific model version behind an HTTP endpoint so applications can request predictions.",
		},
		{
			ID:            2,
			Text:          "How do client applications authenticate against an inference endpoint?",
			Options:       []string{"They don't; endpoints are public", "With a token obtained from the platform's auth service", "With the database admin password", "By IP address alone"},
			CorrectAnswer: 1,
			Explanation:   "Clients fetch a token from the platform's authorization service and send it with each inference request.",
		},
		{
			ID:            3,
			Text:          "What is the benefit of versioning served models?",
			Options:       []string{"Lower storage costs", "Rolling back to a previous model without retraining", "Faster network transfers", "Automatic documentation"},
			CorrectAnswer: 1,
			Explanation:   "Keeping versions deployable means a regression can be rolled back instantly instead of retraining from scratch.",
		},
	},
}

// Tutorials returns the ordered tutorial catalog
func Tutorials() []Tutorial {
	return tutorials
}

// TutorialByID returns the tutorial with the given ID
func TutorialByID(id int) (Tutorial, bool) {
	for _, t := range tutorials {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}

// QuizFor returns the ordered question set for a tutorial, or nil when the
// tutorial has no quiz yet
func QuizFor(tutorialID int) []quiz.Question {
	return quizzes[tutorialID]
}
