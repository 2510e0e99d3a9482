package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexalang/lexa-go/pkg/presenter"
	"github.com/lexalang/lexa-go/pkg/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skills available in the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		presenter.Section("Available skills")
		for _, name := range skills.Names() {
			skill, err := skills.FromName(name, nil)
			if err != nil {
				continue
			}
			kind := skill.Kind.String()
			if skill.IsLocal() {
				kind += ", runs locally"
			}
			presenter.Info(fmt.Sprintf("%-18s %s", name, kind))
		}
	},
}
