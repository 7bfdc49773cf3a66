package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	mlkem "github.com/vlad9486/vru-kyber"
)

func encodingFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "encoding",
		Usage: "text encoding for binary values: hex or base64",
		Value: "hex",
	}
}

func keyGenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate a key pair, writing the public and private keys to files or stdout",
		Flags: []cli.Flag{
			encodingFlag(),
			&cli.StringFlag{Name: "pub-out", Usage: "file to write the public key to (default: stdout)"},
			&cli.StringFlag{Name: "priv-out", Usage: "file to write the private key to (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			pk, sk, err := runKeyGen(c.String("level"))
			if err != nil {
				return err
			}
			log.Info().
				Str("level", c.String("level")).
				Int("pub_bytes", len(pk)).
				Int("priv_bytes", len(sk)).
				Msg("generated key pair")

			enc, err := encoderFor(c.String("encoding"))
			if err != nil {
				return err
			}
			if err := writeOut(c.String("pub-out"), "public key", enc(pk)); err != nil {
				return err
			}
			return writeOut(c.String("priv-out"), "private key", enc(sk))
		},
	}
}

func encapsulateCommand() *cli.Command {
	return &cli.Command{
		Name:      "encapsulate",
		Usage:     "encapsulate a fresh shared secret against a public key",
		ArgsUsage: "<public-key>",
		Flags: []cli.Flag{
			encodingFlag(),
			&cli.StringFlag{Name: "ct-out", Usage: "file to write the ciphertext to (default: stdout)"},
			&cli.StringFlag{Name: "ss-out", Usage: "file to write the shared secret to (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("encapsulate requires exactly one argument: the encoded public key", 1)
			}
			dec, err := decoderFor(c.String("encoding"))
			if err != nil {
				return err
			}
			pk, err := dec(c.Args().First())
			if err != nil {
				return fmt.Errorf("decoding public key: %w", err)
			}

			ct, ss, err := runEncapsulate(c.String("level"), pk)
			if err != nil {
				return err
			}
			log.Info().
				Str("level", c.String("level")).
				Int("ct_bytes", len(ct)).
				Msg("encapsulated shared secret")

			enc, err := encoderFor(c.String("encoding"))
			if err != nil {
				return err
			}
			if err := writeOut(c.String("ct-out"), "ciphertext", enc(ct)); err != nil {
				return err
			}
			return writeOut(c.String("ss-out"), "shared secret", enc(ss))
		},
	}
}

func decapsulateCommand() *cli.Command {
	return &cli.Command{
		Name:      "decapsulate",
		Usage:     "recover the shared secret from a private key and a ciphertext",
		ArgsUsage: "<private-key> <ciphertext>",
		Flags: []cli.Flag{
			encodingFlag(),
			&cli.StringFlag{Name: "ss-out", Usage: "file to write the shared secret to (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("decapsulate requires exactly two arguments: the private key and the ciphertext", 1)
			}
			dec, err := decoderFor(c.String("encoding"))
			if err != nil {
				return err
			}
			sk, err := dec(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("decoding private key: %w", err)
			}
			ct, err := dec(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("decoding ciphertext: %w", err)
			}

			ss, err := runDecapsulate(c.String("level"), sk, ct)
			if err != nil {
				return err
			}
			log.Info().Str("level", c.String("level")).Msg("decapsulated shared secret")

			enc, err := encoderFor(c.String("encoding"))
			if err != nil {
				return err
			}
			return writeOut(c.String("ss-out"), "shared secret", enc(ss))
		},
	}
}

// writeOut writes data to path, or prints it with its label to stdout if
// path is empty.
func writeOut(path, label, data string) error {
	if path == "" {
		fmt.Printf("%s: %s\n", label, data)
		return nil
	}
	if err := os.WriteFile(path, []byte(data+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing %s to %s: %w", label, path, err)
	}
	return nil
}

// runKeyGen, runEncapsulate, and runDecapsulate dispatch on the parameter-set
// label. mlkem does not share a common key/ciphertext interface across its
// three levels, so the switch is unavoidable; each arm is a thin call into
// the matching generated API.
func runKeyGen(level string) (pk, sk []byte, err error) {
	switch level {
	case "512":
		key, err := mlkem.GenerateKey512(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return key.PublicKey().Bytes(), key.Bytes(), nil
	case "768":
		key, err := mlkem.GenerateKey768(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return key.PublicKey().Bytes(), key.Bytes(), nil
	case "1024":
		key, err := mlkem.GenerateKey1024(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return key.PublicKey().Bytes(), key.Bytes(), nil
	default:
		return nil, nil, fmt.Errorf("unknown level %q: want 512, 768, or 1024", level)
	}
}

func runEncapsulate(level string, pkBytes []byte) (ct, ss []byte, err error) {
	switch level {
	case "512":
		pk, err := mlkem.NewPublicKey512(pkBytes)
		if err != nil {
			return nil, nil, err
		}
		ct, ss, err := pk.Encapsulate(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return ct.Bytes(), ss[:], nil
	case "768":
		pk, err := mlkem.NewPublicKey768(pkBytes)
		if err != nil {
			return nil, nil, err
		}
		ct, ss, err := pk.Encapsulate(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return ct.Bytes(), ss[:], nil
	case "1024":
		pk, err := mlkem.NewPublicKey1024(pkBytes)
		if err != nil {
			return nil, nil, err
		}
		ct, ss, err := pk.Encapsulate(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return ct.Bytes(), ss[:], nil
	default:
		return nil, nil, fmt.Errorf("unknown level %q: want 512, 768, or 1024", level)
	}
}

func runDecapsulate(level string, skBytes, ctBytes []byte) (ss []byte, err error) {
	switch level {
	case "512":
		sk, err := mlkem.NewPrivateKey512(skBytes)
		if err != nil {
			return nil, err
		}
		ct, err := mlkem.NewCiphertext512(ctBytes)
		if err != nil {
			return nil, err
		}
		ss := sk.Decapsulate(ct)
		return ss[:], nil
	case "768":
		sk, err := mlkem.NewPrivateKey768(skBytes)
		if err != nil {
			return nil, err
		}
		ct, err := mlkem.NewCiphertext768(ctBytes)
		if err != nil {
			return nil, err
		}
		ss := sk.Decapsulate(ct)
		return ss[:], nil
	case "1024":
		sk, err := mlkem.NewPrivateKey1024(skBytes)
		if err != nil {
			return nil, err
		}
		ct, err := mlkem.NewCiphertext1024(ctBytes)
		if err != nil {
			return nil, err
		}
		ss := sk.Decapsulate(ct)
		return ss[:], nil
	default:
		return nil, fmt.Errorf("unknown level %q: want 512, 768, or 1024", level)
	}
}
