package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/siherrmann/mentioner/model"
	"github.com/spf13/cobra"
)

var (
	analyzeLang       string
	analyzeFile       string
	analyzeReferences string
	analyzeIgnored    []string
)

// references is the file format of --references
type references struct {
	Characters []model.Character `json:"characters"`
	Locations  []model.Location  `json:"locations"`
}

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a paragraph",
	Long: `Analyze reads a paragraph from a file or stdin and prints the extracted
entities and the suggested characters and locations as JSON.`,
	Example: `  echo "Alaric walked into the Great Hall." | mentioner analyze --lang en --references refs.json`,
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readInput(analyzeFile)
		if err != nil {
			fatal("Failed to read input", err)
		}

		var refs references
		if analyzeReferences != "" {
			data, err := os.ReadFile(analyzeReferences)
			if err != nil {
				fatal("Failed to read references", err)
			}
			if err := json.Unmarshal(data, &refs); err != nil {
				fatal("Failed to parse references", err)
			}
		}

		lang, ok := model.ParseLanguage(analyzeLang)
		if !ok {
			logger.Warn("Unsupported language, result will be empty", "language", analyzeLang)
			lang = model.Language(analyzeLang)
		}

		m := loadMentioner()
		defer m.Close()

		result, err := m.AnalyzeParagraph(text, lang, refs.Characters, refs.Locations, analyzeIgnored)
		if err != nil {
			fatal("Failed to analyze", err)
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fatal("Failed to write result", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeLang, "lang", "l", string(model.LanguageEnglish), "Language of the text (en, de)")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "-", "File to analyze, - for stdin")
	analyzeCmd.Flags().StringVarP(&analyzeReferences, "references", "r", "", "JSON file with characters and locations")
	analyzeCmd.Flags().StringSliceVarP(&analyzeIgnored, "ignore", "i", nil, "Words to ignore")
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
