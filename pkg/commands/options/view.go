package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/view"
)

// ViewOptions select and filter the notes a command lists.
type ViewOptions struct {
	View     string
	Bucket   string
	Search   string
	Priority string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVar(&o.View, "view", "notes",
		"One of notes, archived, trash, bucket or all.")
	AddBucketArg(cmd, &o.Bucket)
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only notes whose title, content or tags contain this text.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", note.PriorityAll,
		"Only notes with this priority: High, Medium, Low, Someday or All.")
}

func AddBucketArg(cmd *cobra.Command, bucketRef *string) {
	cmd.Flags().StringVarP(bucketRef, "bucket", "b", "",
		"Bucket id or name.")
}

// Query resolves the flags against the configured buckets. Naming a bucket
// without --view implies the bucket view.
func (o *ViewOptions) Query(buckets bucket.Set) (view.Query, error) {
	kind, err := view.ParseKind(o.View)
	if err != nil {
		return view.Query{}, err
	}
	q := view.Query{View: kind, Search: strings.TrimSpace(o.Search)}
	if o.Bucket != "" {
		b, err := buckets.Resolve(o.Bucket)
		if err != nil {
			return view.Query{}, err
		}
		q.BucketID = b.ID
		if kind == view.Notes {
			q.View = view.Bucket
		}
	}
	if p := strings.TrimSpace(o.Priority); p != "" && !strings.EqualFold(p, note.PriorityAll) {
		parsed, ok := note.ParsePriority(p)
		if !ok {
			return view.Query{}, errUnknownPriority(p)
		}
		q.Priority = parsed.String()
	}
	return q, nil
}
