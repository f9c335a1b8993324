package mcp

// ServerInstructions is sent to the agent on initialize and explains when to
// call confirm and how to act on the result.
const ServerInstructions = `Claude Confirm - interactive confirmation tool

Call the confirm tool proactively after any of the following:
- finishing a multi-step task
- modifying several files
- completing an important configuration change
- running a build or the test suite
- diagnosing and fixing a problem
- completing a refactor
- summarizing the results of your work

How to use it:
1. Summarize the work in Markdown
2. Split related follow-up items into sections the user can select
3. Call confirm to show them to the user
4. Read back the user's confirmation, selection and additional input

Rules for sections (required reading):
Sections are OPTIONAL FOLLOW-UP TASKS, never work that is already done.

Do:
- message: summarize what was completed (done: A, B, C)
- sections: list optional next tasks (add tests, improve performance, fix a security issue)
- make every section a concrete task that can be started immediately

Don't:
- put completed items in sections
- write vague sections ("might need to...")
- use sections for open discussion questions

Example:
message: "Finished features A and B\n\nOptional follow-ups:"
sections: [
  {title: "Fix XSS in MarkdownViewer", content: "Sanitize rendered HTML with DOMPurify", selected: false},
  {title: "Add TypeScript", content: "Convert .js files to .ts and add types", selected: false}
]

Handling the result (important):
After the user confirms you receive:
- "Selected section indices: [...]" - the indices (from 0) the user chose
- "Additional user input:" - free text from the user

You must:
1. Work only on the selected indices; never add tasks the user did not select
2. Not reorder or reprioritize the tasks yourself
3. Start the selected tasks immediately; do not ask again whether to implement them
4. Use the additional input to understand extra requirements

Example: you sent 5 sections (indices 0-4) and the user selected [1, 3].
Correct: start on tasks 1 and 3 right away.
Wrong: asking the user whether or how to do them.
Wrong: working on 0, 2, 4 or anything else that was not selected.

If the result says the user cancelled, stop and wait for further instructions.`

// toolDescription is the description of the confirm tool
const toolDescription = `Call this tool after finishing a task, modifying files, or running builds and tests.
Shows a Markdown summary of your work, lets the user pick follow-up sections, and returns their confirmation and additional input.
Trigger it when a multi-step task is done, an important change is complete, a problem is solved, or a refactor is finished.`
