package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Extra-Chill/extrachill-blocks/pkg/adventure"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <adventure.json>\n", os.Args[0])
		os.Exit(1)
	}

	def, err := loadDefinition(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load adventure: %v\n", err)
		os.Exit(1)
	}

	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    60 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	path := selectPath(reader, def)

	fmt.Print("Character name (optional): ")
	characterName, _ := reader.ReadString('\n')
	characterName = strings.TrimSpace(characterName)

	p := tea.NewProgram(NewConsoleUI(cfg, client, def, path, characterName),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadDefinition(filename string) (*adventure.Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var def adventure.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if errs := def.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return nil, fmt.Errorf("adventure definition is not playable (%d errors)", len(errs))
	}

	return &def, nil
}

func selectPath(reader *bufio.Reader, def *adventure.Definition) *adventure.PathDefinition {
	if len(def.Paths) == 1 {
		return &def.Paths[0]
	}

	fmt.Printf("%s\n\nAvailable paths:\n", def.Title)
	for i, p := range def.Paths {
		title := p.Title
		if title == "" {
			title = p.ID
		}
		fmt.Printf("  %d - %s\n", i+1, title)
	}
	fmt.Print("\nSelect a path by number: ")

	line, _ := reader.ReadString('\n')
	var choice int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d", &choice); err != nil || choice < 1 || choice > len(def.Paths) {
		fmt.Fprintf(os.Stderr, "Invalid selection\n")
		os.Exit(1)
	}
	return &def.Paths[choice-1]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
