package connection

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"strings"

	"glamgo/utils"
)

type Config struct {
	Host        string            `yaml:"host"`
	Token       string            `yaml:"token"`
	IsSecure    bool              `yaml:"isSecure"`
	MaxReferrer int               `yaml:"maxReferrer"`
	Headers     map[string]string `yaml:"headers"`
}

func (p *Config) Hash() string {
	t := fmt.Sprintf("%s://%s/%s", utils.TT(p.IsSecure, "https", "http"), p.Host, p.Token)
	return base64.StdEncoding.EncodeToString(md5.New().Sum([]byte(t)))
}

// GetRpcEndpoint accepts a bare host or a full URL in Host.
func (p *Config) GetRpcEndpoint() string {
	host := strings.TrimRight(p.Host, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host + utils.TT(p.Token == "", "", "/"+p.Token)
	}
	return fmt.Sprintf("%s://%s",
		utils.TT(p.IsSecure, "https", "http"),
		host+utils.TT(p.Token == "", "", "/"+p.Token),
	)
}
