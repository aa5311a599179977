package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/filter"
	"github.com/wonny/vulture/internal/processor"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Resolve the ticker and positions of ad-hoc text",
	Long: `Runs the symbol resolver on title then body, and the position
extractor on body, without fetching anything.

Example:
  go run ./cmd/vulture extract --title "DD \$GME calls are 🚀"
  go run ./cmd/vulture extract --body "My positions: \$15 Call Expiry 12/20/2024"
  go run ./cmd/vulture extract --body-file post.txt --json
  cat post.txt | go run ./cmd/vulture extract --body-file -`,
	RunE: runExtract,
}

var (
	extractTitle    string
	extractBody     string
	extractBodyFile string
	extractJSON     bool
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractTitle, "title", "", "post title")
	extractCmd.Flags().StringVar(&extractBody, "body", "", "post body")
	extractCmd.Flags().StringVar(&extractBodyFile, "body-file", "", "read the body from a file (- for stdin)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the result as JSON")
}

// extractOutput is the JSON shape of the extract command
type extractOutput struct {
	Symbol     string                `json:"symbol,omitempty"`
	Statements []contracts.Statement `json:"statements"`
	Rendered   string                `json:"rendered"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	body := extractBody
	if extractBodyFile != "" {
		data, err := readBodyFile(cmd, extractBodyFile)
		if err != nil {
			return err
		}
		body = data
	}
	if extractTitle == "" && body == "" {
		return fmt.Errorf("nothing to extract: set --title, --body or --body-file")
	}

	eng, err := newEngines(cmd.Context())
	if err != nil {
		return err
	}

	// 필터/평판 없이 두 엔진만 사용
	proc := processor.New(filter.New(eng.cfg.Filter), eng.resolver, eng.extractor, nil, processor.Options{}, eng.log)
	result := proc.Extract(cmd.Context(), extractTitle, body)

	if extractJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(extractOutput{
			Symbol:     result.Symbol,
			Statements: result.Statements,
			Rendered:   contracts.RenderStatements(result.Statements),
		})
	}

	symbolText := result.Symbol
	if symbolText == "" {
		symbolText = "(none)"
	}
	PrintKeyValue("Symbol", symbolText, 10)
	if len(result.Statements) == 0 {
		PrintKeyValue("Positions", "(none)", 10)
		return nil
	}
	PrintKeyValue("Positions", fmt.Sprintf("%d", len(result.Statements)), 10)
	for _, s := range result.Statements {
		fmt.Printf("   • [%s] %s\n", s.Kind(), s.Render())
	}
	return nil
}

func readBodyFile(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(data), nil
}
