// Command rdfc canonicalizes an RDF dataset and prints its canonical N-Quads.
//
// Usage:
//
//	rdfc [-config rdfc.yaml] [-in file] [-format nquads|ntriples|jsonld] [-alg SHA256]
//	     [-factor n] [-max-degree n] [-strict] [-map] [-skolem] [-cid]
//	     [-redis url] [-sign-seed hex] [-v]
//
// The canonical document goes to stdout. The digest and any requested
// metadata go to stderr, one "key value" line each. With -skolem, stdout
// carries the skolemized statements in sorted order instead, while the
// digest, CID and signature still describe the canonical document.
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/geoknoesis/rdf-canon/canon"
	"github.com/geoknoesis/rdf-canon/cas"
	"github.com/geoknoesis/rdf-canon/rdf"
	"github.com/geoknoesis/rdf-canon/signature"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	config    string
	in        string
	format    string
	alg       string
	factor    int
	maxDegree int
	strict    bool
	mapping   bool
	skolem    bool
	cid       bool
	redis     string
	signSeed  string
	verbose   bool
}

func parseFlags(args []string, errOut io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet("rdfc", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.in, "in", "-", "input file, - for stdin")
	fs.StringVar(&f.format, "format", "", "input format: nquads, ntriples or jsonld (default from -in extension, else nquads)")
	fs.StringVar(&f.alg, "alg", "SHA256", "digest algorithm")
	fs.IntVar(&f.factor, "factor", canon.DefaultComplexityFactor, "permutations allowed per blank node")
	fs.IntVar(&f.maxDegree, "max-degree", 0, "maximum N-degree search depth, 0 for unlimited")
	fs.BoolVar(&f.strict, "strict", false, "use the RDFC-1.0 processing order")
	fs.BoolVar(&f.mapping, "map", false, "print the blank node mapping")
	fs.BoolVar(&f.skolem, "skolem", false, "print sorted statements with skolem IRIs instead of canonical blank nodes")
	fs.BoolVar(&f.cid, "cid", false, "print the content identifier of the canonical dataset")
	fs.StringVar(&f.redis, "redis", "", "store the canonical document in the Redis CAS at this URL")
	fs.StringVar(&f.signSeed, "sign-seed", "", "sign the digest with this 32-byte ed25519 seed (hex)")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return flags{}, nil, err
	}
	if fs.NArg() > 0 {
		return flags{}, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// resolveConfig merges the config file with the flags that were set.
func resolveConfig(f flags, set map[string]bool) (Config, error) {
	cfg := defaultConfig()
	if f.config != "" {
		loaded, err := LoadConfig(f.config)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if set["format"] {
		cfg.Format = f.format
	}
	if set["alg"] {
		cfg.Algorithm = f.alg
	}
	if set["factor"] {
		cfg.ComplexityFactor = f.factor
	}
	if set["max-degree"] {
		cfg.MaxDegree = f.maxDegree
	}
	if set["strict"] {
		cfg.Strict = f.strict
	}
	if set["redis"] {
		cfg.Redis = &RedisConfig{URL: f.redis}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func inputFormat(cfg Config, in string) rdf.Format {
	if cfg.Format != "" {
		format, _ := rdf.ParseFormat(cfg.Format)
		return format
	}
	if format, ok := rdf.FormatFromPath(in); ok && in != "-" {
		return format
	}
	return rdf.FormatNQuads
}

func run(ctx context.Context, args []string, stdin io.Reader, out io.Writer, errOut io.Writer) int {
	f, set, err := parseFlags(args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(errOut, "rdfc: %v\n", err)
		return 2
	}
	cfg, err := resolveConfig(f, set)
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: %v\n", err)
		return 2
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	input := stdin
	if f.in != "-" {
		file, err := os.Open(f.in)
		if err != nil {
			fmt.Fprintf(errOut, "rdfc: %v\n", err)
			return 1
		}
		defer file.Close()
		input = file
	}

	quads, err := rdf.ParseQuads(ctx, input, inputFormat(cfg, f.in), cfg.decodeOptions()...)
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: parse: %v\n", err)
		return 1
	}
	logger.Debug("input parsed", slog.Int("statements", len(quads)))

	c := canon.New(canon.DefaultRegistry(), append(cfg.canonOptions(), canon.WithLogger(logger))...)
	res, err := c.Canonicalize(ctx, quads, cfg.Algorithm)
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: canonicalize [%s]: %v\n", canon.Code(err), err)
		return 1
	}

	if f.skolem {
		if err := rdf.WriteQuads(out, rdf.FormatNQuads, canon.Skolemize(res, cfg.SkolemBase)); err != nil {
			fmt.Fprintf(errOut, "rdfc: write: %v\n", err)
			return 1
		}
	} else if _, err := out.Write(res.NQuads); err != nil {
		fmt.Fprintf(errOut, "rdfc: write: %v\n", err)
		return 1
	}

	fmt.Fprintf(errOut, "digest %s %s\n", res.Algorithm, res.DigestHex())
	if f.mapping {
		for from, label := range res.Mapping.All() {
			fmt.Fprintf(errOut, "map _:%s _:%s\n", from, label)
		}
	}
	if f.cid {
		id, err := cas.CIDForResult(res)
		if err != nil {
			fmt.Fprintf(errOut, "rdfc: cid: %v\n", err)
			return 1
		}
		fmt.Fprintf(errOut, "cid %s\n", id)
	}
	if cfg.Redis != nil {
		if code := store(ctx, cfg.Redis, res, errOut); code != 0 {
			return code
		}
	}
	if f.signSeed != "" {
		if code := sign(f.signSeed, res, errOut); code != 0 {
			return code
		}
	}
	return 0
}

func store(ctx context.Context, rc *RedisConfig, res *canon.Result, errOut io.Writer) int {
	client, err := cas.NewRedis(cas.RedisOptions{URL: rc.URL, Prefix: rc.Prefix})
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: store: %v\n", err)
		return 1
	}
	defer client.Close()
	id, err := cas.StoreResult(ctx, client, nil, res)
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: store: %v\n", err)
		return 1
	}
	fmt.Fprintf(errOut, "stored %s\n", id)
	return 0
}

func sign(seedHex string, res *canon.Result, errOut io.Writer) int {
	seed, err := hex.DecodeString(seedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		fmt.Fprintln(errOut, "rdfc: -sign-seed must be 32 bytes (64 hex chars)")
		return 2
	}
	signer, err := signature.NewEd25519Signer(ed25519.NewKeyFromSeed(seed))
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: sign: %v\n", err)
		return 1
	}
	sig, err := signature.Sign(res, signer)
	if err != nil {
		fmt.Fprintf(errOut, "rdfc: sign: %v\n", err)
		return 1
	}
	fmt.Fprintf(errOut, "issuer %s\n", sig.IssuerKey())
	fmt.Fprintf(errOut, "signature %s\n", base64.StdEncoding.EncodeToString(sig.Value))
	return 0
}
