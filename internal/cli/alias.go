package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/jmmshn/pyrho/internal/config"
	"github.com/jmmshn/pyrho/internal/output"
)

func newAliasCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alias",
		Short:   "Manage command aliases",
		GroupID: "utility",
	}
	cmd.AddCommand(
		newAliasSetCmd(d),
		newAliasListCmd(d),
		newAliasDeleteCmd(d),
	)
	return cmd
}

func newAliasSetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <expansion>",
		Short: "Create or update an alias",
		Example: `  pyrho alias set v "version -o json"
  pyrho v`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, expansion := args[0], args[1]

			if err := validateAliasName(name); err != nil {
				return err
			}
			if isBuiltin(cmd.Root(), name) {
				return fmt.Errorf("alias %q shadows a built-in command; choose a different name", name)
			}
			if strings.TrimSpace(expansion) == "" {
				return fmt.Errorf("alias %q: expansion must not be empty", name)
			}

			raw, err := readRawConfig(d.cfg.ConfigFile)
			if err != nil {
				return err
			}
			aliasMap, _ := raw["alias"].(map[string]any)
			if aliasMap == nil {
				aliasMap = map[string]any{}
			}
			aliasMap[name] = expansion
			raw["alias"] = aliasMap
			return writeRawConfig(d.cfg.ConfigFile, raw)
		},
	}
}

func newAliasListCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all aliases",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := make([]string, 0, len(d.cfg.Aliases))
			for k := range d.cfg.Aliases {
				names = append(names, k)
			}
			sort.Strings(names)

			rows := make(settings, 0, len(names))
			for _, name := range names {
				rows = append(rows, output.Row{Key: name, Value: d.cfg.Aliases[name]})
			}
			return writeResult(cmd.OutOrStdout(), d, rows)
		},
	}
}

func newAliasDeleteCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete an alias",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				names := make([]string, 0, len(d.cfg.Aliases))
				for k := range d.cfg.Aliases {
					names = append(names, k)
				}
				return names, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			if _, ok := d.cfg.Aliases[name]; !ok {
				return fmt.Errorf("alias %q not found", name)
			}

			raw, err := readRawConfig(d.cfg.ConfigFile)
			if err != nil {
				return err
			}
			if aliasMap, _ := raw["alias"].(map[string]any); aliasMap != nil {
				delete(aliasMap, name)
				if len(aliasMap) == 0 {
					delete(raw, "alias")
				} else {
					raw["alias"] = aliasMap
				}
			}
			return writeRawConfig(d.cfg.ConfigFile, raw)
		},
	}
}

// validateAliasName rejects names that start with '-' or contain whitespace.
func validateAliasName(name string) error {
	if name == "" {
		return fmt.Errorf("alias name must not be empty")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("alias name %q must not start with '-'", name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return fmt.Errorf("alias name %q must not contain whitespace", name)
		}
	}
	return nil
}

// isBuiltin reports whether name is a command or command alias of root.
func isBuiltin(root *cobra.Command, name string) bool {
	if name == "help" {
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// expandArgs replaces a leading alias in args with its expansion. Aliases are
// read from the config file named by --config, or the default path. Any
// failure to read them leaves args unchanged; the command run reports config
// errors itself.
func expandArgs(root *cobra.Command, args []string, logger *slog.Logger) []string {
	path := configFlagValue(args)
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return args
		}
	}
	aliases, err := config.LoadAliases(path)
	if err != nil {
		logger.Debug("aliases not loaded", "file", path, "error", err)
		return args
	}
	expanded, ok := expandAlias(root, args, aliases)
	if ok {
		logger.Debug("alias expanded", "alias", args[0], "args", expanded)
	}
	return expanded
}

// expandAlias performs a single, non-recursive expansion of args[0].
// Built-in commands always take precedence over aliases.
func expandAlias(root *cobra.Command, args []string, aliases map[string]string) ([]string, bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") || isBuiltin(root, args[0]) {
		return args, false
	}
	expansion, ok := aliases[args[0]]
	if !ok {
		return args, false
	}
	fields := strings.Fields(expansion)
	out := make([]string, 0, len(fields)+len(args)-1)
	out = append(out, fields...)
	return append(out, args[1:]...), true
}

// configFlagValue returns the value of --config in args, if present.
func configFlagValue(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
