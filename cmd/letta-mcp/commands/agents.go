package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/letta"
	"github.com/thoreinstein/letta-mcp/internal/models"
	"github.com/thoreinstein/letta-mcp/pkg/frontmatter"
)

var (
	agentsPickLimit      int
	agentsCreateTemplate bool
)

func init() {
	agentsPickCmd.Flags().IntVar(&agentsPickLimit, "limit", 100,
		"maximum agents to fetch")
	agentsCreateCmd.Flags().BoolVar(&agentsCreateTemplate, "template", false,
		"print a starter agent file instead of creating an agent")
	agentsCmd.AddCommand(agentsPickCmd)
	agentsCmd.AddCommand(agentsCreateCmd)
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Work with Letta agents",
}

var agentsPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick an agent interactively and print its ID",
	Long: `Fetch agents from the Letta server and choose one with a fuzzy finder.
The preview pane shows the agent's model, tools and memory blocks. The chosen
agent ID is printed to stdout, so the command composes with others.`,
	Example: `  # Inspect the memory of an agent you pick
  letta-mcp tools call letta_get_memory --args "{\"agent_id\": \"$(letta-mcp agents pick)\"}"`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		cfg, err := loadConfigWithCredential()
		if err != nil {
			return err
		}
		b, err := newBridge(cfg, loggerFrom(c))
		if err != nil {
			return err
		}
		defer b.Close()

		agents, err := b.letta.ListAgents(c.Context(), agentsPickLimit)
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "listing agents"), "Run: letta-mcp doctor")
		}
		return pickAgent(c.OutOrStdout(), agents.Items)
	},
}

var agentsCreateCmd = &cobra.Command{
	Use:   "create FILE",
	Short: "Create an agent from a Markdown definition file",
	Long: `Create an agent from a Markdown file. The YAML header sets name,
description, model, embedding and the human memory block; the body becomes
the persona memory block. The new agent ID is printed to stdout.`,
	Example: `  # Start from a template
  letta-mcp agents create --template > support.md
  letta-mcp agents create support.md`,
	Args: func(c *cobra.Command, args []string) error {
		if agentsCreateTemplate {
			return cobra.NoArgs(c, args)
		}
		return cobra.ExactArgs(1)(c, args)
	},
	RunE: func(c *cobra.Command, args []string) error {
		if agentsCreateTemplate {
			return printAgentTemplate(c.OutOrStdout())
		}
		cfg, err := loadConfigWithCredential()
		if err != nil {
			return err
		}
		b, err := newBridge(cfg, loggerFrom(c))
		if err != nil {
			return err
		}
		defer b.Close()
		return createAgentFromFile(c.Context(), c.OutOrStdout(), b.letta, args[0])
	},
}

// agentFile is the header of an agent definition file.
type agentFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Model       string `yaml:"model,omitempty"`
	Embedding   string `yaml:"embedding,omitempty"`
	Human       string `yaml:"human,omitempty"`
}

type agentCreator interface {
	CreateAgent(ctx context.Context, req letta.CreateAgentRequest) (models.AgentInfo, error)
}

func printAgentTemplate(w io.Writer) error {
	data, err := frontmatter.Format(agentFile{
		Name:        "my-agent",
		Description: "What this agent is for",
		Model:       "openai/gpt-4o-mini",
		Embedding:   "openai/text-embedding-3-small",
		Human:       "Name: unknown",
	}, "You are a helpful assistant. Describe the agent's persona here.")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing template")
}

// createAgentFromFile reads an agent definition and creates the agent.
func createAgentFromFile(ctx context.Context, w io.Writer, api agentCreator, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewUserError(errors.Wrap(err, "opening agent file"), "")
	}
	defer f.Close()

	var def agentFile
	body, err := frontmatter.MustParse(f, &def)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "reading %s", path), "Run: letta-mcp agents create --template")
	}
	if strings.TrimSpace(def.Name) == "" {
		return errors.NewUserError(errors.Newf("%s: name is required", path), "Add name: to the header")
	}

	agent, err := api.CreateAgent(ctx, letta.CreateAgentRequest{
		Name:        def.Name,
		Description: def.Description,
		Model:       def.Model,
		Embedding:   def.Embedding,
		Persona:     strings.TrimSpace(string(body)),
		Human:       def.Human,
	})
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating agent"), "Run: letta-mcp doctor")
	}
	fmt.Fprintln(w, agent.ID)
	return nil
}

func pickAgent(w io.Writer, agents []models.AgentInfo) error {
	if len(agents) == 0 {
		return errors.NewUserError(errors.New("no agents found"), "Create one with: letta-mcp agents create --template")
	}

	idx, err := fuzzyfinder.Find(
		agents,
		func(i int) string {
			return agentLabel(agents[i])
		},
		fuzzyfinder.WithPromptString("agent> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return agentPreview(agents[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive agent picker failed")
	}

	fmt.Fprintln(w, agents[idx].ID)
	return nil
}

func agentLabel(a models.AgentInfo) string {
	if a.Name == "" {
		return a.ID
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// agentPreview renders the preview pane for a.
func agentPreview(a models.AgentInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:    %s\n", a.Name)
	fmt.Fprintf(&b, "ID:      %s\n", a.ID)
	if a.Model != "" {
		fmt.Fprintf(&b, "Model:   %s\n", a.Model)
	}
	if !a.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Created: %s\n", a.CreatedAt.Format("2006-01-02 15:04"))
	}
	if len(a.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:    %s\n", strings.Join(a.Tags, ", "))
	}
	fmt.Fprintf(&b, "Tools:   %d\n", max(len(a.ToolIDs), len(a.ToolNames)))
	if len(a.BlockLabels) > 0 {
		fmt.Fprintf(&b, "Memory:  %s\n", strings.Join(a.BlockLabels, ", "))
	} else {
		fmt.Fprintf(&b, "Memory:  %d block(s)\n", len(a.BlockIDs))
	}
	if a.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", a.Description)
	}
	return b.String()
}
