// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// PutObjectAPI is the part of the S3 client used by Uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader uploads exported files to an S3 bucket.
type Uploader struct {
	// Client is the S3 client used for uploads. NewUploader initializes it
	// from the default AWS configuration.
	Client PutObjectAPI

	Bucket string
	Prefix string
}

// NewUploader returns an Uploader for the given bucket using the default
// AWS configuration sources:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY)
// * Shared Configuration and Shared Credentials files.
func NewUploader(ctx context.Context, bucket, prefix string) (*Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Uploader{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: prefix,
	}, nil
}

// Key returns the object key of the given file of the given run.
func (uploader *Uploader) Key(runID, file string) string {
	return path.Join(uploader.Prefix, runID, filepath.Base(file))
}

// Upload uploads the files of the given run under <prefix>/<run-id>/.
func (uploader *Uploader) Upload(ctx context.Context, runID string, files []string) error {
	for _, file := range files {
		if err := uploader.upload(ctx, runID, file); err != nil {
			return err
		}
	}

	return nil
}

func (uploader *Uploader) upload(ctx context.Context, runID, file string) error {
	body, err := os.Open(file)
	if err != nil {
		return err
	}
	defer body.Close()

	key := uploader.Key(runID, file)
	if _, err := uploader.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(uploader.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}); err != nil {
		return fmt.Errorf("upload %s to s3://%s/%s: %w", file, uploader.Bucket, key, err)
	}

	logrus.WithField("key", key).Debug("Uploaded file")
	return nil
}
