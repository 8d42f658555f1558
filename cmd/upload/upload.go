package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/spf13/cobra"

	"github.com/groupgrep/groupgrep/pkg/shared/config"
	"github.com/groupgrep/groupgrep/pkg/shared/errors"
	"github.com/groupgrep/groupgrep/pkg/shared/logger"
)

// RunOptionsUpload holds the flags of the upload command.
type RunOptionsUpload struct {
	Bucket string
	Region string
	Prefix string
}

var (
	AppConfig     *config.Config
	uploadOptions RunOptionsUpload

	exampleUploadUsage = `  # Push the artifacts of a finished run to S3
  groupgrep upload --bucket audit-reports gitlab_search_results.2024-06-01_12-00-00.csv projects.2024-06-01_12-00-00.json

  # Keep runs apart with a key prefix
  groupgrep upload --bucket audit-reports --prefix groupgrep/2024-06-01 gitlab_search_results.2024-06-01_12-00-00.csv`
)

// UploadCmd represents the upload command.
var UploadCmd = &cobra.Command{
	Use:                   "upload --bucket BUCKET [--region REGION] [--prefix PREFIX] FILE...",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleUploadUsage,
	Short:                 "Upload run artifacts to an S3 bucket",
	RunE:                  runUploadCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runUploadCommand(cmd *cobra.Command, args []string) error {
	if err := validateUploadArgs(&uploadOptions, args); err != nil {
		return errors.NewCommandError(fmt.Errorf("invalid upload arguments: %w", err), 1)
	}

	lg := logger.NewLogger(AppConfig, "upload")

	awsConfig := aws.Config{}
	if uploadOptions.Region != "" {
		awsConfig.Region = aws.String(uploadOptions.Region)
	}
	sess := session.Must(session.NewSession(&awsConfig))
	uploader := s3manager.NewUploader(sess)

	for _, path := range args {
		if err := uploadFile(uploader, path); err != nil {
			lg.Error("failed to upload artifact", "path", path, "bucket", uploadOptions.Bucket, "error", err)
			return errors.NewCommandError(err, 2)
		}
		lg.Info("artifact uploaded", "path", path, "bucket", uploadOptions.Bucket)
	}

	return nil
}

func uploadFile(uploader *s3manager.Uploader, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact %q: %w", path, err)
	}
	defer file.Close()

	key := filepath.Base(path)
	if uploadOptions.Prefix != "" {
		key = filepath.ToSlash(filepath.Join(uploadOptions.Prefix, key))
	}

	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(uploadOptions.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", path, err)
	}
	return nil
}

func validateUploadArgs(options *RunOptionsUpload, args []string) error {
	if options.Bucket == "" {
		return fmt.Errorf("the 'bucket' flag must be specified")
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one artifact file must be specified")
	}
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("artifact %q is not readable: %w", path, err)
		}
	}
	return nil
}

func init() {
	UploadCmd.Flags().StringVarP(&uploadOptions.Bucket, "bucket", "b", "", "Name of the destination S3 bucket.")
	UploadCmd.Flags().StringVar(&uploadOptions.Region, "region", "", "AWS region of the bucket (defaults to the SDK's resolution).")
	UploadCmd.Flags().StringVar(&uploadOptions.Prefix, "prefix", "", "Key prefix for the uploaded artifacts.")
	UploadCmd.Flags().BoolP("help", "h", false, "Show help for the upload command.")
}
