package storage

import (
	"io"
	"log"
	"time"

	"galeria/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignViewURLFor = time.Hour * 24 * 7

type S3Storage struct {
	bucket   string
	s3Client *s3.S3
}

func NewS3Storage(bucket string) *S3Storage {
	awsConfig := aws.Config{
		Region: aws.String(config.S3_REGION),
	}
	if config.S3_ENDPOINT != "" {
		awsConfig.Endpoint = aws.String(config.S3_ENDPOINT)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if config.S3_KEY != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.S3_KEY, config.S3_SECRET, "")
	}
	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		panic(err)
	}
	return &S3Storage{
		bucket:   bucket,
		s3Client: s3.New(sess),
	}
}

func (s *S3Storage) Save(path, contentType string, reader io.Reader) (int64, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	input := s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := uploader.Upload(&input)
	if err != nil {
		return 0, err
	}
	// The uploader streams the body, size is not reported back
	return 0, nil
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	return err
}

// URL returns a pre-signed download URL valid for a week.
func (s *S3Storage) URL(path string) string {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	url, err := req.Presign(presignViewURLFor)
	if err != nil {
		log.Printf("presign %s: %v", path, err)
		return path
	}
	return url
}

func (s *S3Storage) GetTotalSpace() uint64 {
	return 0 // not reported for object storage
}

func (s *S3Storage) GetFreeSpace() uint64 {
	return 0
}
