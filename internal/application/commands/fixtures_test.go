package commands

import (
	"context"

	"vartree/internal/domain"
	"vartree/internal/ports"
)

func installerState() domain.Value {
	return domain.Map(
		domain.Entry{Key: "branding", Value: domain.Map(
			domain.Entry{Key: "productName", Value: domain.Scalar("Generic Linux")},
			domain.Entry{Key: "version", Value: domain.Scalar("2019.1")},
		)},
		domain.Entry{Key: "partitions", Value: domain.List(
			domain.Map(
				domain.Entry{Key: "device", Value: domain.Scalar("/dev/sda1")},
				domain.Entry{Key: "fs", Value: domain.Scalar("ext4")},
			),
			domain.Map(
				domain.Entry{Key: "device", Value: domain.Scalar("/dev/sda2")},
				domain.Entry{Key: "fs", Value: domain.Scalar("swap")},
			),
		)},
		domain.Entry{Key: "hostname", Value: domain.Scalar("calamares")},
	)
}

func installerModel() *domain.VariantModel {
	doc := installerState()
	return domain.NewVariantModel(&doc)
}

// stubSource serves a fixed document, or an error
type stubSource struct {
	doc   domain.Value
	err   error
	loads int
}

func (s *stubSource) Load(ctx context.Context) (domain.Value, error) {
	s.loads++
	return s.doc, s.err
}

func (s *stubSource) Describe() string {
	return "stub"
}

// closingSource records Close calls
type closingSource struct {
	stubSource
	closed bool
}

func (s *closingSource) Close() error {
	s.closed = true
	return nil
}

// stubOpener records the SourceSpec it was asked to open
type stubOpener struct {
	spec   ports.SourceSpec
	source ports.DocumentSource
	err    error
}

func (o *stubOpener) Open(ctx context.Context, spec ports.SourceSpec) (ports.DocumentSource, error) {
	o.spec = spec
	return o.source, o.err
}
