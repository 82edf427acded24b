package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/genoplan/genoplan/planner/fasta"
	"github.com/genoplan/genoplan/planner/fmindex"
)

var sampleRate int // Occurrence checkpoint spacing

var indexCmd = &cobra.Command{
	Use:   "index <input.fasta> <output.fm>",
	Short: "Build an FM-index over a source genome",
	Long: `Build an FM-index over the nucleotide sequence(s) contained in a FASTA file
and serialise it to a binary .fm file for the planning commands.

Non-ACGT characters are stripped before indexing. Multi-record files are
indexed so that no match spans two records.`,
	Example: "  genoplan index source.fasta source.fm",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := buildIndex(args[0], args[1], sampleRate); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// buildIndex indexes every record of the FASTA file at in and saves it to out.
func buildIndex(in, out string, rate int) error {
	records, err := fasta.Load(in)
	if err != nil {
		return err
	}
	var bases int64
	for _, r := range records {
		bases += int64(len(r.Seq))
	}
	logrus.Infof("indexing %d records (%s bp) from %s", len(records), humanize.Comma(bases), in)
	idx, err := fmindex.Build(fasta.Sequences(records), rate)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	return idx.SaveFile(out)
}

func init() {
	indexCmd.Flags().IntVar(&sampleRate, "sample-rate", fmindex.DefaultSampleRate, "Spacing of occurrence checkpoints (smaller is faster and larger in memory)")
	rootCmd.AddCommand(indexCmd)
}
