// Package sample writes a small demonstration document folder with text,
// Word and PDF files so the search tool can be tried without real data.
package sample

import (
	"fmt"
	"path/filepath"
	"strings"
)

// File describes one generated document. Parts are paragraphs for .docx,
// pages for .pdf and are joined with blank lines for .txt.
type File struct {
	Path  string
	Parts []string
}

// Files is the default demonstration corpus, laid out like a team share.
var Files = []File{
	{
		Path: "HR/leave_policy.txt",
		Parts: []string{
			"Annual leave policy.",
			"Employees accrue two days of paid vacation per month of service. Requests for leave must be submitted to the line manager at least two weeks in advance.",
		},
	},
	{
		Path: "HR/onboarding_checklist.docx",
		Parts: []string{
			"Onboarding checklist for new hires",
			"Collect a signed employment contract and tax forms on the first day.",
			"Set up a laptop, email account and badge access before the start date.",
		},
	},
	{
		Path: "Finance/expense_reimbursement.pdf",
		Parts: []string{
			"Expense reimbursement guidelines. Travel, meals and lodging are reimbursed when receipts are attached.",
			"Claims above five hundred dollars require approval from the finance director.",
		},
	},
	{
		Path: "Finance/budget_2024.txt",
		Parts: []string{
			"Quarterly budget summary.",
			"Marketing spend increased while cloud infrastructure costs decreased after the migration.",
		},
	},
	{
		Path: "IT/password_policy.docx",
		Parts: []string{
			"Password and account security",
			"Passwords must be at least fourteen characters and rotated every ninety days.",
			"Multi-factor authentication is required for remote access to company systems.",
		},
	},
	{
		Path: "IT/incident_response.pdf",
		Parts: []string{
			"Security incident response plan. Report suspected phishing emails or malware to the security team immediately.",
			"",
			"Affected machines are isolated from the network until forensic analysis is complete.",
		},
	},
	{
		Path: "Projects/Apollo/kickoff_notes.txt",
		Parts: []string{
			"Project Apollo kickoff meeting notes.",
			"The team agreed on a six week discovery phase followed by a prototype of the customer portal.",
		},
	},
}

// Generate writes Files under root, creating directories as needed, and
// returns the paths written.
func Generate(root string) ([]string, error) {
	written := make([]string, 0, len(Files))
	for _, f := range Files {
		path := filepath.Join(root, filepath.FromSlash(f.Path))
		var err error
		switch filepath.Ext(path) {
		case ".txt":
			err = WriteText(path, joinParagraphs(f.Parts))
		case ".docx":
			err = WriteDocx(path, f.Parts)
		case ".pdf":
			err = WritePDF(path, f.Parts)
		default:
			err = fmt.Errorf("unsupported sample file type %q", filepath.Ext(path))
		}
		if err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func joinParagraphs(parts []string) string {
	return strings.Join(parts, "\n\n") + "\n"
}
