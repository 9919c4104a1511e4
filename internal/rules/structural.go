package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sena-ops/compliguard/internal/model"
)

const UseApprovedVerbsID = "UseApprovedVerbs"

// ApprovedVerbs é o conjunto padrão de verbos aceitos em nomes de função
// Verbo-Substantivo. Sobrescrevível via configuração.
var ApprovedVerbs = []string{
	"Add", "Assert", "Backup", "Block", "Checkpoint", "Clear", "Close",
	"Compare", "Complete", "Compress", "Confirm", "Connect", "Convert",
	"ConvertFrom", "ConvertTo", "Copy", "Debug", "Deny", "Disable",
	"Disconnect", "Dismount", "Edit", "Enable", "Enter", "Exit", "Expand",
	"Export", "Find", "Format", "Get", "Grant", "Hide", "Import",
	"Initialize", "Install", "Invoke", "Join", "Limit", "Lock", "Measure",
	"Merge", "Mount", "Move", "New", "Open", "Optimize", "Out", "Pop",
	"Protect", "Publish", "Push", "Read", "Receive", "Redo", "Register",
	"Remove", "Rename", "Repair", "Request", "Reset", "Resize", "Restart",
	"Restore", "Resume", "Revoke", "Save", "Search", "Select", "Send", "Set",
	"Show", "Skip", "Split", "Start", "Step", "Stop", "Submit", "Suspend",
	"Switch", "Sync", "Test", "Trace", "Unblock", "Undo", "Uninstall",
	"Unlock", "Unprotect", "Unpublish", "Unregister", "Update", "Use",
	"Wait", "Watch", "Write",
}

// Heurística documentada: não é um parser de verdade, só o padrão
// "function Verbo-Substantivo" no começo de linha.
var funcDefRe = regexp.MustCompile(`(?im)^\s*function\s+([A-Za-z]+)-([A-Za-z0-9_]+)`)

func structuralRules(approvedVerbs []string) []model.RuleDefinition {
	if len(approvedVerbs) == 0 {
		approvedVerbs = ApprovedVerbs
	}
	approved := make(map[string]bool, len(approvedVerbs))
	for _, v := range approvedVerbs {
		approved[strings.ToLower(v)] = true
	}

	return []model.RuleDefinition{
		{
			ID:       UseApprovedVerbsID,
			Category: model.CatStructural,
			Severity: model.SevCritical,
			// convenção da comunidade: arquivos de teste ficam isentos
			AppliesTo: model.AppliesProduction,
			Evaluate: func(text string) []model.RuleMatch {
				var out []model.RuleMatch
				for _, idx := range funcDefRe.FindAllStringSubmatchIndex(text, -1) {
					verb := text[idx[2]:idx[3]]
					noun := text[idx[4]:idx[5]]
					if approved[strings.ToLower(verb)] {
						continue
					}
					out = append(out, model.RuleMatch{
						Line: lineOf(text, idx[0]),
						Message: fmt.Sprintf(
							"função '%s-%s' usa o verbo não aprovado '%s'", verb, noun, verb),
					})
				}
				return out
			},
		},
	}
}
