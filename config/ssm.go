package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const ssmTimeout = 15 * time.Second

// ImportSSMParameters copies every parameter under parameterPath into the process
// environment. The variable name is the last path element; variables that are
// already set win over SSM.
func ImportSSMParameters(parameterPath string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ssmTimeout)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("load aws config: %w", err)
	}
	client := ssm.NewFromConfig(awsCfg)

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	imported := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return imported, fmt.Errorf("read SSM parameters under %s: %w", parameterPath, err)
		}
		for _, param := range page.Parameters {
			name := envNameFromParameter(aws.ToString(param.Name))
			if name == "" {
				continue
			}
			if _, exists := os.LookupEnv(name); exists {
				continue
			}
			if err := os.Setenv(name, aws.ToString(param.Value)); err != nil {
				return imported, fmt.Errorf("set %s: %w", name, err)
			}
			imported++
		}
	}
	return imported, nil
}

// envNameFromParameter maps "/portfolio/prod/RESEND_API_KEY" to "RESEND_API_KEY".
func envNameFromParameter(name string) string {
	base := path.Base(name)
	if base == "/" || base == "." {
		return ""
	}
	return base
}
