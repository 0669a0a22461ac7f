package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"vartree/internal/adapters/codec"
	"vartree/internal/application"
	"vartree/internal/application/commands"
	"vartree/internal/domain"
	"vartree/internal/ports"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Explore the document interactively",
	Long: `Start an interactive shell over the document.

Commands:
  ls [path]      list children
  cd <path>      change the current node (.. goes up, / goes to the root)
  pwd            print the current path
  get [path]     print a value
  tree [path]    print a subtree
  find <query>   fuzzy search below the root
  reload         read the source again
  exit, quit     leave the shell

Paths are relative to the current node unless they start with /.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if sourceURI == "-" {
			return fmt.Errorf("%w: the shell reads commands from stdin, so the document must come from elsewhere", application.ErrInvalidSource)
		}

		m, err := loadModel(ctx)
		if err != nil {
			return err
		}
		src, err := openSource(ctx)
		if err != nil {
			return err
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "/> ",
			HistoryFile:     "", // In-memory history for this session
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		sh := newShell(m, src, cmd.OutOrStdout())
		fmt.Fprintf(sh.out, "%s: %d nodes. Type 'help' for commands.\n", src.Describe(), m.Len())

		for {
			rl.SetPrompt(sh.prompt())
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					break
				}
				continue
			} else if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}

			quit, err := sh.exec(ctx, line)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			if quit {
				break
			}
		}
		return nil
	},
}

// shell keeps the current position while interpreting shell commands
type shell struct {
	model  *domain.VariantModel
	source ports.DocumentSource
	cwd    domain.Path
	out    io.Writer
}

func newShell(m *domain.VariantModel, src ports.DocumentSource, out io.Writer) *shell {
	return &shell{model: m, source: src, cwd: domain.Path{}, out: out}
}

func (s *shell) prompt() string {
	return "/" + strings.TrimPrefix(s.cwd.String(), ".") + "> "
}

// resolve turns a shell argument into an absolute path
func (s *shell) resolve(arg string) (domain.Path, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "" || arg == ".":
		return s.cwd, nil
	case arg == "/":
		return domain.Path{}, nil
	case arg == "..":
		if len(s.cwd) == 0 {
			return domain.Path{}, nil
		}
		return s.cwd[:len(s.cwd)-1], nil
	case strings.HasPrefix(arg, "/"):
		return application.ParsePath(arg[1:])
	}

	rel, err := application.ParsePath(arg)
	if err != nil {
		return nil, err
	}
	abs := make(domain.Path, 0, len(s.cwd)+len(rel))
	abs = append(abs, s.cwd...)
	return append(abs, rel...), nil
}

// exec runs one shell line and reports whether the shell should stop
func (s *shell) exec(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "":
		return false, nil

	case "exit", "quit":
		return true, nil

	case "help":
		fmt.Fprintln(s.out, "ls [path]  cd <path>  pwd  get [path]  tree [path]  find <query>  reload  exit")
		return false, nil

	case "pwd":
		fmt.Fprintln(s.out, s.cwd.String())
		return false, nil

	case "cd":
		path, err := s.resolve(arg)
		if err != nil {
			return false, err
		}
		index, ok := s.model.Locate(path)
		if !ok {
			return false, &application.LookupError{Path: path.String()}
		}
		if index.IsValid() && !s.model.Underlying(index).IsContainer() {
			return false, fmt.Errorf("%s is not a container", path)
		}
		s.cwd = path
		return false, nil

	case "ls":
		path, err := s.resolve(arg)
		if err != nil {
			return false, err
		}
		entries, err := commands.NewListChildrenCommand(s.model, path.String()).Execute(ctx)
		if err != nil {
			return false, err
		}
		printEntries(s.out, entries)
		return false, nil

	case "get":
		path, err := s.resolve(arg)
		if err != nil {
			return false, err
		}
		result, err := commands.NewLookupCommand(s.model, path.String()).Execute(ctx)
		if err != nil {
			return false, err
		}
		if result.Value.IsScalar() {
			fmt.Fprintln(s.out, result.Value.String())
			return false, nil
		}
		data, err := codec.EncodeJSONIndent(result.Value)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, string(data))
		return false, nil

	case "tree":
		path, err := s.resolve(arg)
		if err != nil {
			return false, err
		}
		root, ok := s.model.Locate(path)
		if !ok {
			return false, &application.LookupError{Path: path.String()}
		}
		render := commands.NewRenderTreeCommand(s.model)
		render.Root = root
		out, err := render.Execute(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprint(s.out, out)
		return false, nil

	case "find":
		results, err := commands.NewSearchCommand(s.model, arg).Execute(ctx)
		if err != nil {
			return false, err
		}
		for _, r := range results {
			fmt.Fprintf(s.out, "%s  %s\n", r.Path, r.Value)
		}
		return false, nil

	case "reload":
		result, err := commands.NewReloadCommand(s.source, s.model).Execute(ctx)
		if err != nil {
			return false, err
		}
		// the old position may no longer exist
		if _, ok := s.model.Locate(s.cwd); !ok {
			s.cwd = domain.Path{}
		}
		fmt.Fprintln(s.out, result.Message)
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", name)
	}
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
