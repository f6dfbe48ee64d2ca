package conductor

import (
	"embed"

	"github.com/arthur-debert/conductor/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// installHelpTopics adds the embedded topics to the help command.
func installHelpTopics(rootCmd *cobra.Command) {
	opts := topics.Options{Renderer: &topics.PlainRenderer{}}
	if isTerminal() {
		opts.Renderer = topics.NewGlamourRenderer()
	}
	tm, err := topics.Load(topicFiles, "topics", opts)
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm.Install(rootCmd)
	rootCmd.SetHelpCommandGroupID("misc")
}
