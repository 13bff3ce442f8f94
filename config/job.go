package config

import (
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ericlevine/zxingrs/internal"
)

// Job is a batch of codeword blocks read from a TOML file:
//
//	field = "qrcode"
//
//	[[block]]
//	id = "1-M"
//	codewords = "10 20 0c 56 ..."
//	ec = 10
type Job struct {
	Field  string     `toml:"field"`
	Blocks []JobBlock `toml:"block"`
}

// JobBlock is one codeword block of a Job.
type JobBlock struct {
	ID        string `toml:"id"`
	Codewords string `toml:"codewords"`
	EC        int    `toml:"ec"`
}

// Bytes parses the block's hex codewords.
func (b JobBlock) Bytes() ([]byte, error) {
	codewords, err := internal.ParseCodewords(b.Codewords)
	if err != nil {
		return nil, errors.Wrapf(err, "block %s", b.ID)
	}
	return codewords, nil
}

// LoadJob reads a job file. Unknown keys are rejected so that typos do not
// silently drop blocks.
func LoadJob(path string) (*Job, error) {
	var job Job
	md, err := toml.DecodeFile(path, &job)
	if err != nil {
		return nil, errors.Wrapf(err, "read job %s", path)
	}
	return finishJob(&job, md, path)
}

// ParseJob is LoadJob for job text already in memory.
func ParseJob(data string) (*Job, error) {
	var job Job
	md, err := toml.Decode(data, &job)
	if err != nil {
		return nil, errors.Wrap(err, "parse job")
	}
	return finishJob(&job, md, "<inline>")
}

func finishJob(job *Job, md toml.MetaData, source string) (*Job, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("job %s: unknown key %s", source, undecoded[0])
	}
	if len(job.Blocks) == 0 {
		return nil, errors.Errorf("job %s has no blocks", source)
	}
	for i := range job.Blocks {
		if job.Blocks[i].ID == "" {
			job.Blocks[i].ID = defaultBlockID(i)
		}
	}
	return job, nil
}

func defaultBlockID(i int) string {
	return "block-" + strconv.Itoa(i)
}
