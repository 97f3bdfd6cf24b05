package entity

// AccountSection is one named credential/region pair loaded from the
// configuration file. It is read once at startup and never mutated.
type AccountSection struct {
	Name            string `json:"name" yaml:"name" toml:"name"`
	Region          string `json:"region" yaml:"region" toml:"region"`
	AccessKeyID     string `json:"aws_access_key_id" yaml:"aws_access_key_id" toml:"aws_access_key_id"`
	SecretAccessKey string `json:"aws_secret_access_key" yaml:"aws_secret_access_key" toml:"aws_secret_access_key"`
}

// SessionHandle identifies an authenticated session opened for one
// account section. The actual AWS clients live behind the repository.
type SessionHandle struct {
	Account string
	Region  string
}
