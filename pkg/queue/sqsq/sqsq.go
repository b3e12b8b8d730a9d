// Package sqsq implements the command queue on AWS SQS.
package sqsq

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/roverlink-io/roverlink/pkg/options"
	"github.com/roverlink-io/roverlink/pkg/queue"
)

// Environment variables holding static credentials. When either is unset the
// SDK default credential chain is used instead.
const (
	accessKeyEnv = "AWS_ACCESS_KEY"
	secretKeyEnv = "AWS_SECRET_KEY"
)

var _ queue.Queue = (*Queue)(nil)

// Queue receives commands from a single SQS queue.
type Queue struct {
	client   *awssqs.Client
	queueURL string
}

// New builds the SQS client from options and environment credentials.
func New(ctx context.Context, opts *options.SqsOptions) (*Queue, error) {
	if opts == nil || opts.QueueURL == "" {
		return nil, fmt.Errorf("sqs queue url is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}

	if ak, sk := os.Getenv(accessKeyEnv), os.Getenv(secretKeyEnv); ak != "" && sk != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(ak, sk, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &Queue{
		client:   awssqs.NewFromConfig(cfg),
		queueURL: opts.QueueURL,
	}, nil
}

// ReceiveOne fetches at most one message without long polling; the caller's
// context carries the time budget.
func (q *Queue) ReceiveOne(ctx context.Context) (*queue.Message, error) {
	out, err := q.client.ReceiveMessage(ctx, &awssqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Messages) == 0 {
		return nil, nil
	}

	m := out.Messages[0]
	return &queue.Message{
		Body:    aws.ToString(m.Body),
		Receipt: aws.ToString(m.ReceiptHandle),
	}, nil
}

// Delete acknowledges a message by its receipt handle.
func (q *Queue) Delete(ctx context.Context, receipt string) error {
	_, err := q.client.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receipt),
	})
	return err
}
