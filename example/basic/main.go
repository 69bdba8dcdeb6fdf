package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/siherrmann/mentioner"
	"github.com/siherrmann/mentioner/core/nlp"
	"github.com/siherrmann/mentioner/helper"
	"github.com/siherrmann/mentioner/model"
)

const sampleScene = `Alaric walked into the Great Hall and looked for Brynn.
The Hall was empty. Only old Mira waited by the fire, staring at the door.`

var characters = []model.Character{
	{ID: 1, Name: "Alaric Thorne"},
	{ID: 2, Name: "Brynn"},
	{ID: 3, Name: "Mira of the Vale"},
}

var locations = []model.Location{
	{ID: 5, Title: "Great Hall"},
	{ID: 6, Title: "Dark Forest"},
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	// English only, no model download needed
	registryConfig := nlp.DefaultRegistryConfig()
	registryConfig.GermanNERModel = ""
	logger := helper.NewLogger(os.Stdout, slog.LevelInfo)

	m := mentioner.NewMentioner(nlp.LoadRegistry(registryConfig, logger), model.DefaultAnalyzerConfig())
	m.SetLogger(logger)
	defer m.Close()

	if err := m.WithDatabase(dbConfig); err != nil {
		log.Fatalf("Failed to attach database: %v", err)
	}

	ctx := context.Background()
	const projectID, sceneID = int64(1), int64(10)

	scene, err := m.AnalyzeScene(ctx, projectID, sceneID, sampleScene, model.LanguageEnglish, characters, locations)
	if err != nil {
		log.Fatalf("Failed to analyze scene: %v", err)
	}

	fmt.Printf("Found %d entities\n", len(scene.Entities))
	for _, e := range scene.Entities {
		fmt.Printf("  %-12s %-6s [%d:%d]\n", e.Text, e.Label, e.Start, e.End)
	}

	// Link every suggestion to its character or location
	for _, s := range scene.Suggestions {
		fmt.Printf("Suggestion: %q -> %s (score %d)\n", s.MentionText, s.MatchedName, s.Score)
		if _, err := m.AcceptSuggestion(ctx, sceneID, s); err != nil {
			log.Fatalf("Failed to accept suggestion: %v", err)
		}
	}

	// Ignore a word the tagger keeps flagging
	if _, err := m.IgnoreWord(ctx, projectID, "Hall"); err != nil {
		log.Fatalf("Failed to ignore word: %v", err)
	}

	scene, err = m.AnalyzeScene(ctx, projectID, sceneID, sampleScene, model.LanguageEnglish, characters, locations)
	if err != nil {
		log.Fatalf("Failed to analyze scene: %v", err)
	}

	fmt.Println("\nScene after linking:")
	for _, e := range scene.Linked {
		if e.IsLinked {
			fmt.Printf("  %-12s linked to %s\n", e.Text, e.LinkedName)
		} else {
			fmt.Printf("  %-12s not linked\n", e.Text)
		}
	}
}
