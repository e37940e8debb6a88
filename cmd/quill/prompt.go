package main

import (
	"fmt"

	"codeberg.org/llamaquill/quill/internal/blog"
	"github.com/spf13/cobra"
)

// prints the prompt a submission would send, without sending it
func newPromptCmd(a *app) *cobra.Command {
	var (
		topic     string
		wordCount string
		audience  string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt for a topic without calling the generation server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := blog.DefaultForm(a.cfg.Models, a.cfg.Endpoint)
			form.Topic = topic
			form.WordCount = wordCount
			form.Audience = blog.Audience(audience)

			req, err := blog.NewRequest(form)
			if err != nil {
				return err
			}

			text, err := blog.BuildPrompt(cmd.Context(), req)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&topic, "topic", "t", "", "blog topic")
	flags.StringVarP(&wordCount, "words", "w", fmt.Sprint(blog.DefaultWordCount), "desired word count (50-2000)")
	flags.StringVarP(&audience, "audience", "a", string(blog.DefaultAudience), "Researchers, Data Scientists or General Audience")

	return cmd
}
