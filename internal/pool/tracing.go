package pool

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

type tracedExecutor struct {
	name string
	next Executor
}

// Traced wraps next so every submission runs inside its own X-Ray segment. Outbound judge
// calls made with an xray.Client become subsegments of it.
func Traced(name string, next Executor) Executor {
	return &tracedExecutor{name: name, next: next}
}

func (t *tracedExecutor) Execute(ctx context.Context, sub *domain.Submission) (isDuplicate bool, err error) {
	ctx, seg := xray.BeginSegment(ctx, t.name)
	defer func() { seg.Close(err) }()

	_ = seg.AddAnnotation("submission_id", sub.SubmissionID.String())
	_ = seg.AddAnnotation("language", string(sub.Language))

	return t.next.Execute(ctx, sub)
}
