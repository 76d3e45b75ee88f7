// File: lixenwraith/emaconfig/doc.go

// Package emaconfig resolves the configuration of a market-data consumer session
// from three inputs: a configuration file, programmatic documents and direct
// setter calls.
//
// Features:
//   - XML, TOML, YAML and JSON configuration files, read once and never fatal
//   - Typed values validated against an explicit key registry
//   - Diagnostics collected at the tree root, filterable by severity
//   - Programmatic documents applied in registration order
//   - Channel variants (socket, HTTP, encrypted, reliable multicast) as a closed set
//   - Builder pattern for easy initialization
//
// Quick Start:
//
//	cfg := emaconfig.NewConsumerConfig(emaconfig.WithFileName("EmaConfig.xml"))
//	cfg.Host("ads1:14002")
//
//	active, err := cfg.Resolve()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.LogErrors(emaconfig.NewSlogLogger(nil), emaconfig.SeverityWarning)
//
// Precedence (highest to lowest):
//  1. Direct calls (Host forces a socket channel)
//  2. Programmatic documents, the last registered first
//  3. Configuration file
//  4. Compiled-in defaults
//
// Consumer selection: ConsumerName, then the DefaultConsumer of the last
// programmatic document defining one, then the file's DefaultConsumer, then the
// first consumer in the file, then "EmaConsumer".
//
// File layout (XML):
//
//	<EmaConfig>
//	    <ConsumerGroup>
//	        <DefaultConsumer value="Consumer_1"/>
//	        <ConsumerList>
//	            <Consumer>
//	                <Name value="Consumer_1"/>
//	                <Channel value="Channel_1"/>
//	            </Consumer>
//	        </ConsumerList>
//	    </ConsumerGroup>
//	    <ChannelGroup>
//	        <ChannelList>
//	            <Channel>
//	                <Name value="Channel_1"/>
//	                <ChannelType value="ChannelType::RSSL_SOCKET"/>
//	                <Host value="localhost"/>
//	                <Port value="14002"/>
//	            </Channel>
//	        </ChannelList>
//	    </ChannelGroup>
//	</EmaConfig>
//
// Concurrency:
// ConsumerConfig is not safe for concurrent use. A resolved ActiveConfig is never
// modified afterwards and may be shared.
package emaconfig
