// pkg/env/doc.go
package env

/*
Package env lets consumers of a Slang for Android build find what they
need inside it.

Two layouts are understood. A build's dist folder keeps libraries per ABI
and shares one include tree:

    dist/arm64-v8a/libslang.so
    dist/include/slang.h

A fetched release archive is already specific to one ABI:

    slang-android/lib/libslang.so
    slang-android/include/slang.h

Basic Usage:

    e, err := env.New("dist", android.ABIArm64)
    if err != nil {
        return err
    }

    lib := e.FindLibrary("slang")
    fmt.Println(lib.Path) // dist/arm64-v8a/libslang.so

    flags := e.CompilerFlags()
    fmt.Println(flags) // -Idist/include -Ldist/arm64-v8a -lslang
*/
