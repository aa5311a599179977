package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/vocabulary"
)

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect the known-symbol vocabulary",
}

var vocabCheckCmd = &cobra.Command{
	Use:   "check [SYMBOL...]",
	Short: "Report whether symbols are known or ambiguous",
	Long: `Loads the vocabulary from VOCABULARY_FILE, KNOWN_STOCK_SYMBOLS_FILE
and KNOWN_STOCK_SYMBOLS, then reports each symbol's status.
Without arguments only the vocabulary summary is printed.

Example:
  go run ./cmd/vulture vocab check GME OR TSLA`,
	RunE: runVocabCheck,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabCheckCmd)
}

func runVocabCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	vocab, err := vocabulary.Load(cfg.Vocabulary)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}

	PrintKeyValue("Symbols", fmt.Sprintf("%d", vocab.Size()), 10)
	PrintKeyValue("Ambiguous", strings.Join(vocab.Ambiguous(), ", "), 10)

	if len(args) == 0 {
		return nil
	}

	fmt.Println()
	widths := []int{8, 8, 10}
	PrintTableHeader([]string{"Symbol", "Known", "Ambiguous"}, widths)
	for _, arg := range args {
		sym := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(arg), "$"))
		PrintTableRow([]string{
			sym,
			yesNo(vocab.Contains(sym)),
			yesNo(vocab.IsAmbiguous(sym)),
		}, widths)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
