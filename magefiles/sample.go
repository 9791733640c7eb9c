//go:build mage

package main

import "strings"

// sampleDocument is the seed written by Init. Fences are spelled ~~~ here and
// converted to backticks.
var sampleDocument = strings.ReplaceAll(`# Sample Seed Data

## METADATA

client_name: Sample Co
domain: sample.example.com
subdomain: sample
description: Sample marketing site
contact_email: hello@sample.example.com
active: true

---

## GLOBAL STYLES

~~~json
{
  "primaryColor": "#1d4ed8",
  "fontFamily": "Inter, sans-serif"
}
~~~

---

## SETTINGS

~~~json
{
  "analytics": {"enabled": false}
}
~~~

---

## PAGES

### PAGE: Home

~~~
title: Home
slug: home
path: /
template: landing
meta_title: Sample Co | Home
meta_description: Welcome to Sample Co
visible: true
~~~

**BLOCK 1: Hero**

~~~
block_type: hero
order: 1
visible: true

CONTENT:
{
  "heading": "Welcome",
  "subheading": "Edit seeds/sample.md to describe your site"
}

STYLING:
{
  "background": {"color": "#ffffff"}
}
~~~
`, "~~~", "```")
