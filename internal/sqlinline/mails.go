package sqlinline

const QListMails = `--sql 085320a2-e388-439c-a265-e2a56d1ee147
select id, from_name, subject, preview, sent_at, read, starred, archived, attachments, category
from mails
order by sent_at desc;
`

const QInsertMail = `--sql 163d8c08-2e93-412b-987f-be74485a0393
insert into mails (id, from_name, subject, preview, sent_at, read, starred, archived, attachments, category, to_addr)
values ($1::uuid, $2::text, $3::text, $4::text, now(), true, false, false, 0, 'outbox', $5::text)
returning sent_at;
`

const QSelectMail = `--sql 6bfd089f-5508-4c87-ae8a-bdfc49515474
select id
from mails
where id = $1::uuid
limit 1;
`

const QArchiveMail = `--sql 5f242cf3-0a75-4412-adf3-d00275fa5f1e
update mails
set archived = true
where id = $1::uuid;
`

const QDeleteMail = `--sql 70fffa57-4b97-48db-97ef-ace559a350d6
delete from mails
where id = $1::uuid;
`
